package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/dcslol/dcs_go_invite_shortener/internal/api/rest/modeldto"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	hook := flag.String("w", "", "Webhook receiver URL to register and exercise")
	flag.Parse()
	address := *a

	const createJSON = "/api/links"
	const webhooks = "/api/webhooks"
	const ping = "/ping"
	const iterations = 20

	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	// Performing ping loading
	log.Println("Performing ping loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + ping)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Optionally register a webhook subscription receiving all events
	if *hook != "" {
		log.Println("Registering webhook subscription for", *hook)
		body, _ := json.Marshal(modeldto.RequestWebhook{URL: *hook, Format: "custom"})
		res, err := client.R().SetHeader("Content-Type", "application/json").SetBody(body).Post(address + webhooks)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Webhook registration status:", res.StatusCode())
	}

	// Performing link creation and redirect loading
	log.Println("Performing link creation and redirect loading")
	for i := 0; i < iterations; i++ {
		shortID := "load-" + randStringBytes(8)
		body, _ := json.Marshal(modeldto.RequestLink{ID: shortID, URL: "https://discord.gg/" + randStringBytes(7)})
		res, err := client.R().SetHeader("Content-Type", "application/json").SetBody(body).Post(address + createJSON)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() != http.StatusCreated {
			log.Println("Unexpected creation status:", res.StatusCode(), string(res.Body()))
			continue
		}
		var created modeldto.ResponseLink
		if err := json.Unmarshal(res.Body(), &created); err != nil {
			log.Fatal(err)
		}
		for j := 0; j < 5; j++ {
			res, err := client.R().Get(address + "/" + created.ID)
			if err != nil {
				log.Fatal(err)
			}
			if res.StatusCode() != http.StatusTemporaryRedirect {
				log.Println("Unexpected redirect status:", res.StatusCode())
			}
		}
	}
	log.Println("Loading finished")
}

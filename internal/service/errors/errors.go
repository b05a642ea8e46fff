// Package errors provides custom errors for types implementing service interfaces.
package errors

import "fmt"

type (
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceFoundNilDependency struct {
		Msg string
	}
	ServiceInitHashError struct {
		Msg string
	}
	ServiceEncodingHashError struct {
		Msg string
	}
	// ServiceIncorrectInputURL rejects target URLs that are not valid invite links.
	ServiceIncorrectInputURL struct {
		Msg string
	}
	// ServiceIncorrectShortID rejects candidate IDs violating the allowed pattern.
	ServiceIncorrectShortID struct {
		Msg string
	}
	// ServiceReservedShortID rejects candidate IDs colliding with the reserved-word set.
	ServiceReservedShortID struct {
		ID string
	}
	// OAuthFlowError carries an opaque failure reason surfaced as a redirect code.
	OAuthFlowError struct {
		Reason string
		Err    error
	}
	// DeliveryError wraps a failed webhook delivery attempt; it is always logged
	// at the point of delivery and never propagated to the event emitter.
	DeliveryError struct {
		SubscriptionID string
		Err            error
	}
)

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilDependency) Error() string {
	return e.Msg
}

func (e *ServiceInitHashError) Error() string {
	return e.Msg
}

func (e *ServiceEncodingHashError) Error() string {
	return e.Msg
}

func (e *ServiceIncorrectInputURL) Error() string {
	return e.Msg
}

func (e *ServiceIncorrectShortID) Error() string {
	return e.Msg
}

func (e *ServiceReservedShortID) Error() string {
	return fmt.Sprintf("%s: is a reserved identifier", e.ID)
}

func (e *OAuthFlowError) Error() string {
	return e.Reason
}

func (e *OAuthFlowError) Unwrap() error {
	return e.Err
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: delivery failed: %v", e.SubscriptionID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// OAuth failure reason codes appended to the unauthenticated redirect location.
const (
	ReasonProviderDenied      = "provider_denied"
	ReasonStateMismatch       = "state_mismatch"
	ReasonMissingCode         = "missing_code"
	ReasonTokenExchangeFailed = "token_exchange_failed"
	ReasonUserFetchFailed     = "user_fetch_failed"
)

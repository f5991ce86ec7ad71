package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"signup-wizard/internal/backend"
	"signup-wizard/pkg/models"
	"strings"
)

// Submitter is the pair of backend writes the gateway chooses between.
type Submitter interface {
	CreateSignup(ctx context.Context, req models.SignupRequest) (*models.MessageResponse, error)
	UpdateSignup(ctx context.Context, req models.UpdateSignupRequest) (*models.MessageResponse, error)
}

const (
	msgPhoneRequired      = "Phone number is required for WhatsApp/Telegram subscription"
	msgPhoneInvalid       = "Please enter a valid phone number with country code"
	msgEmailRequired      = "Email is required for email subscription"
	msgEmailInvalid       = "Please enter a valid email address"
	msgIdentifierRequired = "Either email or phoneNumber is required"

	msgCreateFailed = "Something went wrong. Please try again."
	msgUpdateFailed = "Failed to update user"
	msgUpdated      = "Your preferences have been updated."
	msgNetwork      = "Network error. Please check your connection and try again."
)

// Submission is everything the gateway needs for one write.
type Submission struct {
	Mode      Mode
	Contact   ContactInfo
	Channels  ChannelSet
	Interests []string
}

type Gateway struct {
	Backend            Submitter
	BrandName          string
	SentinelPhone      string
	DefaultCountryCode string
}

func (g *Gateway) welcome() string {
	return fmt.Sprintf("Signup successful! Welcome to %s.", g.BrandName)
}

// Validate applies the local rules for sub.Mode. It never touches the network.
func (g *Gateway) Validate(sub Submission) error {
	if sub.Mode == ModeUpdate {
		_, err := g.BuildUpdateRequest(sub)
		return err
	}
	_, err := g.BuildSignupRequest(sub)
	return err
}

func (g *Gateway) BuildSignupRequest(sub Submission) (models.SignupRequest, error) {
	if len(sub.Interests) == 0 {
		return models.SignupRequest{}, invalid(msgSelectMarket)
	}
	if sub.Channels.Empty() {
		return models.SignupRequest{}, invalid(msgSelectChannel)
	}

	phone := NormalizePhone(sub.Contact.PhoneNumber, g.DefaultCountryCode)
	if sub.Channels.Messaging() {
		if phone == "" {
			return models.SignupRequest{}, invalid(msgPhoneRequired)
		}
		if !ValidPhone(phone) {
			return models.SignupRequest{}, invalid(msgPhoneInvalid)
		}
	} else {
		phone = g.SentinelPhone
	}

	email := strings.TrimSpace(sub.Contact.Email)
	if sub.Channels.Has(ChannelEmail) {
		if email == "" {
			return models.SignupRequest{}, invalid(msgEmailRequired)
		}
		if !ValidEmail(email) {
			return models.SignupRequest{}, invalid(msgEmailInvalid)
		}
	}

	return models.SignupRequest{
		PreferredName: strings.TrimSpace(sub.Contact.FullName),
		Email:         email,
		PhoneNumber:   phone,
		IsWhatsapp:    sub.Channels.Has(ChannelWhatsApp),
		IsTelegram:    sub.Channels.Has(ChannelTelegram),
		IsEmail:       sub.Channels.Has(ChannelEmail),
		Interests:     append([]string{}, sub.Interests...),
	}, nil
}

func (g *Gateway) BuildUpdateRequest(sub Submission) (models.UpdateSignupRequest, error) {
	phone := NormalizePhone(sub.Contact.PhoneNumber, g.DefaultCountryCode)
	email := strings.TrimSpace(sub.Contact.Email)
	if phone == "" && email == "" {
		return models.UpdateSignupRequest{}, invalid(msgIdentifierRequired)
	}
	if phone != "" && !ValidPhone(phone) {
		return models.UpdateSignupRequest{}, invalid(msgPhoneInvalid)
	}

	return models.UpdateSignupRequest{
		Email:         email,
		PhoneNumber:   phone,
		PreferredName: strings.TrimSpace(sub.Contact.FullName),
		Interests:     append([]string{}, sub.Interests...),
		IsWhatsapp:    sub.Channels.Has(ChannelWhatsApp),
		IsTelegram:    sub.Channels.Has(ChannelTelegram),
		IsEmail:       sub.Channels.Has(ChannelEmail),
	}, nil
}

// Submit validates sub and issues exactly one create or update request. The
// returned message is the user-facing success text; errors are
// *ValidationError or *SubmitError.
func (g *Gateway) Submit(ctx context.Context, sub Submission) (string, error) {
	var (
		resp     *models.MessageResponse
		err      error
		success  string
		fallback string
	)

	switch sub.Mode {
	case ModeUpdate:
		req, verr := g.BuildUpdateRequest(sub)
		if verr != nil {
			return "", verr
		}
		resp, err = g.Backend.UpdateSignup(ctx, req)
		success, fallback = msgUpdated, msgUpdateFailed
	default:
		req, verr := g.BuildSignupRequest(sub)
		if verr != nil {
			return "", verr
		}
		resp, err = g.Backend.CreateSignup(ctx, req)
		success, fallback = g.welcome(), msgCreateFailed
	}

	if err != nil {
		return "", mapSubmitError(sub.Mode, err, fallback)
	}
	if resp != nil && resp.Message != "" {
		return resp.Message, nil
	}
	return success, nil
}

func mapSubmitError(mode Mode, err error, fallback string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		log.Printf("Backend rejected %s submission: %v", mode, err)
		return &SubmitError{Message: backend.RejectionMessage(err, fallback), Status: apiErr.Status, Err: err}
	}
	log.Printf("Submission (%s) did not reach backend: %v", mode, err)
	return &SubmitError{Message: msgNetwork, Err: err}
}

func invalid(msg string) error {
	return &ValidationError{Step: StepContact, Message: msg}
}

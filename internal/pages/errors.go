package pages

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/fetch"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
)

const (
	ReasonMissing     = "missing"
	ReasonNotANumber  = "not a number"
	invalidNumberText = "Valeur numérique invalide : "
)

// ValidationError rejects form input before anything is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Message is the text shown next to the form.
func (e *ValidationError) Message() string {
	if e.Reason == ReasonNotANumber {
		return invalidNumberText + e.Field
	}
	return render.MissingFieldText
}

// formFailureMessage chooses what a form shows inline for a failed submit.
func formFailureMessage(id router.ControllerID, err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		log.Debugf("[%s] %s", id, err)
		return validationErr.Message()
	}
	if httpErr, ok := fetch.AsHttpError(err); ok {
		if httpErr.Unauthorized() {
			log.Warnf("[%s] unauthorized: %s", id, httpErr.Message)
		} else {
			log.Errorf("[%s] submit: %s", id, httpErr)
		}
		return httpErr.Message
	}
	log.Errorf("[%s] submit: %s", id, err)
	return render.NetworkErrorText
}

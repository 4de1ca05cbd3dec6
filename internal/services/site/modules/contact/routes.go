package contact

import (
	"net/http"

	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact, h.handleShow)
	mux.HandleFunc(http.MethodGet+" "+routepath.ContactPrefix+"{$}", h.handleShow)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactNext, h.handleNext)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactPrevious, h.handlePrevious)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactSubmit, h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactReset, h.handleReset)
}

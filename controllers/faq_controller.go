package controllers

import (
	"net/http"

	"github.com/blogem/campus-admin/services"
)

// FAQController serves the campus facility facts
type FAQController struct {
	services *services.Services
}

// NewFAQController creates a new FAQ controller
func NewFAQController(services *services.Services) *FAQController {
	return &FAQController{services: services}
}

func (c *FAQController) LibraryName(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.FAQ.LibraryName(r.Context()))
}

func (c *FAQController) LibraryHours(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.FAQ.LibraryHours(r.Context()))
}

func (c *FAQController) CafeteriaName(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.FAQ.CafeteriaName(r.Context()))
}

func (c *FAQController) CafeteriaTimings(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.FAQ.CafeteriaTimings(r.Context()))
}

func (c *FAQController) LunchTiming(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, c.services.FAQ.LunchTiming(r.Context()))
}

package handlers

import (
	"aier-cms/helper"
	"aier-cms/models"
	"aier-cms/services"

	"github.com/gin-gonic/gin"
)

type PersonaHandler struct {
	personaService services.PersonaService
	Helper         *helper.HTTPHelper
}

func NewPersonaHandler(personaService services.PersonaService) *PersonaHandler {
	return &PersonaHandler{
		personaService: personaService,
		Helper:         &helper.HTTPHelper{},
	}
}

// GetPersonas returns every persona, active or not, with article counts.
func (h *PersonaHandler) GetPersonas(c *gin.Context) {
	personas, err := h.personaService.ListAdmin()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Personas loaded", personas)
}

func (h *PersonaHandler) GetPersona(c *gin.Context) {
	persona, err := h.personaService.Get(c.Param("id"), true)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Persona loaded", persona)
}

func (h *PersonaHandler) CreatePersona(c *gin.Context) {
	var req models.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Name, bio, and role are required", h.Helper.EmptyJsonMap())
		return
	}

	persona, err := h.personaService.Create(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Persona created", persona)
}

func (h *PersonaHandler) UpdatePersona(c *gin.Context) {
	var req models.UpdatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
		return
	}

	persona, err := h.personaService.Update(c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Persona updated", persona)
}

func (h *PersonaHandler) DeletePersona(c *gin.Context) {
	persona, err := h.personaService.Delete(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Persona deactivated", persona)
}

// GetPublicPersonas lists active personas only, in display order.
func (h *PersonaHandler) GetPublicPersonas(c *gin.Context) {
	personas, err := h.personaService.ListPublic()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Personas loaded", personas)
}

// GetPublicPersona returns an active persona with its public articles.
func (h *PersonaHandler) GetPublicPersona(c *gin.Context) {
	detail, err := h.personaService.GetPublicDetail(c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Persona loaded", detail)
}

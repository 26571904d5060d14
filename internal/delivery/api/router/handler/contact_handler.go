package handler

import (
	"net/http"

	"cookbook/internal/delivery/api/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ContactHandler serves /api/contacts. Reads are public; writes need a bearer token.
type ContactHandler struct {
	contacts usecase.ContactUsecase
}

// NewContactHandler is the constructor for ContactHandler.
func NewContactHandler(contacts usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(contacts, toContactResponse))
}

func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.contacts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	contact, err := h.contacts.Create(c.Request().Context(), usecase.ContactInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toContactResponse(contact))
}

func (h *ContactHandler) Update(c echo.Context) error {
	var req contactUpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	contact, err := h.contacts.Update(c.Request().Context(), c.Param("id"), usecase.ContactInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contacts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Contact deleted successfully")
}

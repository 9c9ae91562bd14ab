package handler

import (
	"net/http"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/domain/console"
	"gamevault/internal/repository"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/validator"

	"github.com/labstack/echo/v4"
)

const entityConsole = "console"

type ConsoleHandler struct {
	consoles repository.ConsoleRepository
	audit    *audit.Logger
	pageSize int
}

func NewConsoleHandler(consoles repository.ConsoleRepository, auditLog *audit.Logger, pageSize int) *ConsoleHandler {
	return &ConsoleHandler{
		consoles: consoles,
		audit:    auditLog,
		pageSize: pageSize,
	}
}

type CreateConsoleRequest struct {
	Name                string `json:"name"`
	Model               string `json:"model"`
	ReleaseDate         string `json:"release_date"`
	Manufacturer        string `json:"manufacturer"`
	SerialNumberBox     string `json:"serial_number_box"`
	SerialNumberConsole string `json:"serial_number_console"`
	CompleteInBox       bool   `json:"complete_in_box"`
	Condition           string `json:"condition"`
	Inventory           int    `json:"inventory"`
	Sealed              bool   `json:"sealed"`
}

type UpdateConsoleRequest struct {
	Name                *string `json:"name"`
	Model               *string `json:"model"`
	ReleaseDate         *string `json:"release_date"`
	Manufacturer        *string `json:"manufacturer"`
	SerialNumberBox     *string `json:"serial_number_box"`
	SerialNumberConsole *string `json:"serial_number_console"`
	CompleteInBox       *bool   `json:"complete_in_box"`
	Condition           *string `json:"condition"`
	Inventory           *int    `json:"inventory"`
	Sealed              *bool   `json:"sealed"`
}

// List returns every console, or one page of a model when ?model= is given.
func (h *ConsoleHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if model := c.QueryParam("model"); model != "" {
		page, err := parsePageParam(c)
		if err != nil {
			return handleHTTPError(c, err)
		}

		normalized := console.NormalizeModel(model)
		total, err := h.consoles.CountByModel(ctx, normalized)
		if err != nil {
			return err
		}

		consoles, err := h.consoles.ListByModel(ctx, normalized, h.pageSize, (page-1)*h.pageSize)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, paginate(consoles, page, h.pageSize, total))
	}

	consoles, err := h.consoles.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consoles)
}

func (h *ConsoleHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	cns, err := h.consoles.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cns)
}

func (h *ConsoleHandler) Create(c echo.Context) error {
	var req CreateConsoleRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validateConsoleFields(req.Name, req.Model, req.ReleaseDate, req.Manufacturer, req.SerialNumberConsole, req.Inventory); err != nil {
		return apperrors.Validation(err.Error())
	}

	cns, err := h.consoles.Create(c.Request().Context(), console.CreateConsoleInput{
		Name:                req.Name,
		Model:               req.Model,
		ReleaseDate:         req.ReleaseDate,
		Manufacturer:        req.Manufacturer,
		SerialNumberBox:     req.SerialNumberBox,
		SerialNumberConsole: req.SerialNumberConsole,
		CompleteInBox:       req.CompleteInBox,
		Condition:           req.Condition,
		Inventory:           req.Inventory,
		Sealed:              req.Sealed,
	})
	if err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordCreated(principal.UserID, entityConsole, cns.ID)
	}

	return c.JSON(http.StatusCreated, cns)
}

func (h *ConsoleHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req UpdateConsoleRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.consoles.Update(ctx, id, input); err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordUpdated(principal.UserID, entityConsole, id)
	}

	cns, err := h.consoles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cns)
}

func (h *ConsoleHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.consoles.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordDeleted(principal.UserID, entityConsole, id)
	}

	return respondMessage(c, http.StatusOK, msgConsoleDeleted)
}

func (req *UpdateConsoleRequest) toInput() (console.UpdateConsoleInput, error) {
	input := console.UpdateConsoleInput{}
	touched := false

	if req.Name != nil {
		if err := validator.Name(*req.Name); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Name = req.Name
		touched = true
	}
	if req.Model != nil {
		if err := validator.Model(*req.Model); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Model = req.Model
		touched = true
	}
	if req.ReleaseDate != nil {
		if err := validator.ReleaseDate(*req.ReleaseDate); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.ReleaseDate = req.ReleaseDate
		touched = true
	}
	if req.Manufacturer != nil {
		if err := validator.Manufacturer(*req.Manufacturer); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Manufacturer = req.Manufacturer
		touched = true
	}
	if req.SerialNumberBox != nil {
		input.SerialNumberBox = req.SerialNumberBox
		touched = true
	}
	if req.SerialNumberConsole != nil {
		if err := validator.SerialNumber(*req.SerialNumberConsole); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.SerialNumberConsole = req.SerialNumberConsole
		touched = true
	}
	if req.CompleteInBox != nil {
		input.CompleteInBox = req.CompleteInBox
		touched = true
	}
	if req.Condition != nil {
		input.Condition = req.Condition
		touched = true
	}
	if req.Inventory != nil {
		if err := validator.Inventory(*req.Inventory); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Inventory = req.Inventory
		touched = true
	}
	if req.Sealed != nil {
		input.Sealed = req.Sealed
		touched = true
	}

	if !touched {
		return input, apperrors.BadRequest(msgNoFieldsToUpdate)
	}
	return input, nil
}

func validateConsoleFields(name, model, releaseDate, manufacturer, serial string, inventory int) error {
	if err := validator.Name(name); err != nil {
		return err
	}
	if err := validator.Model(model); err != nil {
		return err
	}
	if err := validator.ReleaseDate(releaseDate); err != nil {
		return err
	}
	if err := validator.Manufacturer(manufacturer); err != nil {
		return err
	}
	if err := validator.SerialNumber(serial); err != nil {
		return err
	}
	return validator.Inventory(inventory)
}

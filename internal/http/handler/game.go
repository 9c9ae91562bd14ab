package handler

import (
	"net/http"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/domain/game"
	"gamevault/internal/repository"
	apperrors "gamevault/pkg/errors"
	"gamevault/pkg/validator"

	"github.com/labstack/echo/v4"
)

const entityGame = "game"

type GameHandler struct {
	games    repository.GameRepository
	audit    *audit.Logger
	pageSize int
}

func NewGameHandler(games repository.GameRepository, auditLog *audit.Logger, pageSize int) *GameHandler {
	return &GameHandler{
		games:    games,
		audit:    auditLog,
		pageSize: pageSize,
	}
}

type CreateGameRequest struct {
	Title         string `json:"title"`
	ReleaseDate   string `json:"release_date"`
	Manufacturer  string `json:"manufacturer"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	Platform      string `json:"platform"`
	Score         int    `json:"score"`
	CompleteInBox bool   `json:"complete_in_box"`
	Condition     string `json:"condition"`
	Inventory     int    `json:"inventory"`
	Sealed        bool   `json:"sealed"`
}

type UpdateGameRequest struct {
	Title         *string `json:"title"`
	ReleaseDate   *string `json:"release_date"`
	Manufacturer  *string `json:"manufacturer"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	Platform      *string `json:"platform"`
	Score         *int    `json:"score"`
	CompleteInBox *bool   `json:"complete_in_box"`
	Condition     *string `json:"condition"`
	Inventory     *int    `json:"inventory"`
	Sealed        *bool   `json:"sealed"`
}

// List serves three shapes: ?search= does a substring search, ?platform=
// returns one page of that platform, and no filter returns everything.
func (h *GameHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if search := c.QueryParam("search"); search != "" {
		games, err := h.games.Search(ctx, search)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, games)
	}

	if platform := c.QueryParam("platform"); platform != "" {
		page, err := parsePageParam(c)
		if err != nil {
			return handleHTTPError(c, err)
		}

		normalized := game.NormalizePlatform(platform)
		total, err := h.games.CountByPlatform(ctx, normalized)
		if err != nil {
			return err
		}

		games, err := h.games.ListByPlatform(ctx, normalized, h.pageSize, (page-1)*h.pageSize)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, paginate(games, page, h.pageSize, total))
	}

	games, err := h.games.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

func (h *GameHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	g, err := h.games.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, g)
}

func (h *GameHandler) Create(c echo.Context) error {
	var req CreateGameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validateGameFields(req.Title, req.ReleaseDate, req.Manufacturer, req.Platform, req.Score, req.Inventory); err != nil {
		return apperrors.Validation(err.Error())
	}

	g, err := h.games.Create(c.Request().Context(), game.CreateGameInput{
		Title:         req.Title,
		ReleaseDate:   req.ReleaseDate,
		Manufacturer:  req.Manufacturer,
		Description:   req.Description,
		Genre:         req.Genre,
		Platform:      req.Platform,
		Score:         req.Score,
		CompleteInBox: req.CompleteInBox,
		Condition:     req.Condition,
		Inventory:     req.Inventory,
		Sealed:        req.Sealed,
	})
	if err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordCreated(principal.UserID, entityGame, g.ID)
	}

	return c.JSON(http.StatusCreated, g)
}

func (h *GameHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req UpdateGameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.games.Update(ctx, id, input); err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordUpdated(principal.UserID, entityGame, id)
	}

	g, err := h.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GameHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.games.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	if principal, ok := auth.GetPrincipal(c); ok {
		h.audit.RecordDeleted(principal.UserID, entityGame, id)
	}

	return respondMessage(c, http.StatusOK, msgGameDeleted)
}

func (req *UpdateGameRequest) toInput() (game.UpdateGameInput, error) {
	input := game.UpdateGameInput{}
	touched := false

	if req.Title != nil {
		if err := validator.Title(*req.Title); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Title = req.Title
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
	if req.Description != nil {
		input.Description = req.Description
		touched = true
	}
	if req.Genre != nil {
		input.Genre = req.Genre
		touched = true
	}
	if req.Platform != nil {
		if err := validator.Platform(*req.Platform); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Platform = req.Platform
		touched = true
	}
	if req.Score != nil {
		if err := validator.Score(*req.Score); err != nil {
			return input, apperrors.Validation(err.Error())
		}
		input.Score = req.Score
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

func validateGameFields(title, releaseDate, manufacturer, platform string, score, inventory int) error {
	if err := validator.Title(title); err != nil {
		return err
	}
	if err := validator.ReleaseDate(releaseDate); err != nil {
		return err
	}
	if err := validator.Manufacturer(manufacturer); err != nil {
		return err
	}
	if err := validator.Platform(platform); err != nil {
		return err
	}
	if err := validator.Score(score); err != nil {
		return err
	}
	return validator.Inventory(inventory)
}

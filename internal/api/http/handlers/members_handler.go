package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dominion-roster/internal/api/dto"
	"github.com/spec-kit/dominion-roster/internal/auth"
	"github.com/spec-kit/dominion-roster/internal/domain"
	"github.com/spec-kit/dominion-roster/internal/service"
	"github.com/spec-kit/dominion-roster/internal/view"
	apperrors "github.com/spec-kit/dominion-roster/pkg/util/errorutil"
)

// MembersHandler manages roster endpoints.
type MembersHandler struct {
	roster *service.RosterService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(roster *service.RosterService) *MembersHandler {
	return &MembersHandler{roster: roster}
}

// List GET /members. Query params map to the transient view state.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	query := view.Query{
		Search:  c.Query("search"),
		Group:   c.Query("group"),
		SortKey: c.Query("sort"),
		SortDir: view.SortDirection(c.Query("dir")),
	}

	members := h.roster.Members()
	derived := view.Derive(members, query)
	seasons := h.roster.Seasons()

	totals := make(map[string]int, len(seasons))
	for _, season := range seasons {
		totals[season] = domain.SeasonDominionCount(members, season)
	}

	items := make([]dto.MemberResponse, 0, len(derived))
	for i := range derived {
		items = append(items, memberResponse(derived[i]))
	}

	return c.JSON(fiber.Map{"data": dto.RosterResponse{
		Members:        items,
		Seasons:        seasons,
		DominionTotals: totals,
		SyncState:      string(h.roster.State()),
		Total:          len(members),
	}})
}

// Create POST /members.
func (h *MembersHandler) Create(c *fiber.Ctx) error {
	var req dto.SaveMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input, err := memberInput(req)
	if err != nil {
		return err
	}
	id, err := h.roster.AddOrUpdateMember(c.Context(), auth.RoleFromContext(c), input, "")
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedResponse{ID: id}})
}

// Update PUT /members/:id.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	var req dto.SaveMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input, err := memberInput(req)
	if err != nil {
		return err
	}
	if _, err := h.roster.AddOrUpdateMember(c.Context(), auth.RoleFromContext(c), input, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusAccepted)
}

// UpdateStatus PUT /members/:id/seasons/:season.
func (h *MembersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}

	if err := h.roster.UpdateStatus(c.Context(), auth.RoleFromContext(c), c.Params("id"), c.Params("season"), status); err != nil {
		return err
	}
	return c.SendStatus(http.StatusAccepted)
}

// UpdateGroup PATCH /members/:id/group.
func (h *MembersHandler) UpdateGroup(c *fiber.Ctx) error {
	var req dto.GroupUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.roster.UpdateGroup(c.Context(), auth.RoleFromContext(c), c.Params("id"), req.Group); err != nil {
		return err
	}
	return c.SendStatus(http.StatusAccepted)
}

// UpdateLineName PATCH /members/:id/line-name.
func (h *MembersHandler) UpdateLineName(c *fiber.Ctx) error {
	var req dto.LineNameUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.roster.UpdateLineName(c.Context(), auth.RoleFromContext(c), c.Params("id"), req.LineName); err != nil {
		return err
	}
	return c.SendStatus(http.StatusAccepted)
}

// Delete DELETE /members/:id?confirm=true. Removal requires explicit
// confirmation.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return apperrors.NewValidationError("removal requires confirm=true", nil)
	}
	if err := h.roster.RemoveMember(c.Context(), auth.RoleFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func memberInput(req dto.SaveMemberRequest) (service.MemberInput, error) {
	input := service.MemberInput{
		Name:     req.Name,
		Group:    req.Group,
		LineName: req.LineName,
	}
	if req.SeasonalHistory != nil {
		history := make([]domain.SeasonalStatus, 0, len(req.SeasonalHistory))
		for _, entry := range req.SeasonalHistory {
			status, err := domain.ParseStatus(entry.Status)
			if err != nil {
				return service.MemberInput{}, apperrors.NewValidationError("invalid status",
					map[string]any{"season": entry.Season, "status": entry.Status})
			}
			history = append(history, domain.SeasonalStatus{Season: entry.Season, Status: status})
		}
		input.SeasonalHistory = history
	}
	return input, nil
}

func memberResponse(member domain.Member) dto.MemberResponse {
	history := make([]dto.SeasonalStatusPayload, 0, len(member.SeasonalHistory))
	for _, entry := range member.SeasonalHistory {
		history = append(history, dto.SeasonalStatusPayload{
			Season: entry.Season,
			Status: string(entry.Status),
		})
	}
	return dto.MemberResponse{
		ID:              member.ID,
		Name:            member.Name,
		Group:           member.Group,
		LineName:        member.LineName,
		SeasonalHistory: history,
		DominionCount:   member.DominionCount(),
	}
}

package handlers

import (
	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/utils"
)

func toUserResponse(id session.Identity) dto.UserResponse {
	return dto.UserResponse{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
		Kind:        string(id.Kind),
		Admin:       id.Admin,
	}
}

func toTripResponse(t services.TripResult) dto.TripResponse {
	return dto.TripResponse{
		ID:            t.Trip.ID,
		UserID:        t.Trip.OwnerID,
		Name:          t.Trip.Name,
		Description:   t.Trip.Description,
		StartDate:     utils.FormatDate(t.Trip.StartDate),
		EndDate:       utils.FormatDate(t.Trip.EndDate),
		CoverPhotoURL: t.Trip.CoverPhotoURL,
		IsPublic:      t.Trip.IsPublic,
		TotalBudget:   t.Trip.TotalBudget,
		City:          t.Trip.City,
		Country:       t.Trip.Country,
		Origin:        t.Origin.String(),
		CreatedAt:     utils.FormatTimestamp(t.Trip.CreatedAt),
		UpdatedAt:     utils.FormatTimestamp(t.Trip.UpdatedAt),
	}
}

func toTripResponses(trips []services.TripResult) []dto.TripResponse {
	out := make([]dto.TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}

func toStopResponse(s models.Stop) dto.StopResponse {
	return dto.StopResponse{
		ID:         s.ID,
		TripID:     s.TripID,
		CityID:     s.CityID,
		City:       s.City,
		OrderIndex: s.OrderIndex,
		StartDate:  utils.FormatDate(s.StartDate),
		EndDate:    utils.FormatDate(s.EndDate),
		Notes:      s.Notes,
		CreatedAt:  utils.FormatTimestamp(s.CreatedAt),
	}
}

func toStopResponses(stops []models.StopWithActivities) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		resp := toStopResponse(s.Stop)
		resp.Activities = toActivityResponses(s.Activities)
		out = append(out, resp)
	}
	return out
}

func toActivityResponse(a models.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:                 a.ID,
		StopID:             a.StopID,
		ActivityTemplateID: a.ActivityTemplateID,
		Name:               a.Name,
		Description:        a.Description,
		Category:           a.Category,
		Cost:               a.Cost,
		DurationHours:      a.DurationHours,
		ActivityDate:       utils.FormatDate(a.ActivityDate),
		ActivityTime:       a.ActivityTime,
		OrderIndex:         a.OrderIndex,
		CreatedAt:          utils.FormatTimestamp(a.CreatedAt),
	}
}

func toActivityResponses(activities []models.Activity) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	return out
}

func toExpenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		StopID:      e.StopID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		ExpenseDate: utils.FormatDate(e.ExpenseDate),
		CreatedAt:   utils.FormatTimestamp(e.CreatedAt),
	}
}

func toProfileResponse(p models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Language:  p.Language,
		Role:      p.Role,
		CreatedAt: utils.FormatTimestamp(p.CreatedAt),
		UpdatedAt: utils.FormatTimestamp(p.UpdatedAt),
	}
}

func toBudgetResponse(b services.BudgetView) dto.BudgetResponse {
	resp := dto.BudgetResponse{
		TripID:         b.TripID,
		TotalBudget:    b.TotalBudget,
		ActivitiesCost: b.ActivitiesCost,
		ExpensesCost:   b.ExpensesCost,
		TotalSpent:     b.TotalSpent,
		Remaining:      b.Remaining,
		OverBudget:     b.OverBudget,
		ByStop:         make([]dto.StopCostResponse, 0, len(b.ByStop)),
		ByCategory:     b.ByCategory,
	}
	for _, s := range b.ByStop {
		resp.ByStop = append(resp.ByStop, dto.StopCostResponse{StopID: s.StopID, CityName: s.CityName, Cost: s.Cost})
	}
	return resp
}

func toSectionsResponse(s services.Sections) dto.SectionsResponse {
	return dto.SectionsResponse{TripID: s.TripID, Sections: s.Sections, Saved: s.Saved, Pending: s.Pending}
}

func toTimelineResponse(t services.Timeline) dto.TimelineResponse {
	out := dto.TimelineResponse{TripID: t.TripID, Sections: make([]dto.TimelineSection, 0, len(t.Entries))}
	for _, e := range t.Entries {
		out.Sections = append(out.Sections, dto.TimelineSection{ItinerarySection: e.ItinerarySection, Status: e.Status})
	}
	out.Total = len(out.Sections)
	return out
}

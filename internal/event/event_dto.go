package event

import "time"

type CreateEventRequest struct {
	Name                 string `json:"name" binding:"required"`
	Date                 string `json:"date" binding:"required"`
	Time                 string `json:"time"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	MaxParticipants      int    `json:"max_participants" binding:"required"`
	RegistrationDeadline string `json:"registration_deadline"`
}

type UpdateEventRequest struct {
	Name                 string `json:"name" binding:"required"`
	Date                 string `json:"date" binding:"required"`
	Time                 string `json:"time"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	MaxParticipants      int    `json:"max_participants" binding:"required"`
	RegistrationDeadline string `json:"registration_deadline"`
}

type EventResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time,omitempty"`
	Location             string   `json:"location,omitempty"`
	Description          string   `json:"description,omitempty"`
	MaxParticipants      int      `json:"max_participants"`
	RegistrationDeadline *string  `json:"registration_deadline,omitempty"`
	Participants         []string `json:"participants"`
	Status               string   `json:"status"`
	Full                 bool     `json:"full"`
}

func mapToResponse(e Event, now time.Time) EventResponse {
	resp := EventResponse{
		ID:              e.ID.String(),
		Name:            e.Name,
		Date:            e.Date.Format("2006-01-02"),
		Time:            e.Time,
		Location:        e.Location,
		Description:     e.Description,
		MaxParticipants: e.MaxParticipants,
		Participants:    e.Participants,
		Status:          e.DerivedStatus(now),
		Full:            e.Full(),
	}
	if resp.Participants == nil {
		resp.Participants = []string{}
	}
	if e.RegistrationDeadline != nil {
		v := e.RegistrationDeadline.Format("2006-01-02")
		resp.RegistrationDeadline = &v
	}
	return resp
}

func mapToListResponse(events []Event, now time.Time) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = mapToResponse(e, now)
	}
	return resp
}

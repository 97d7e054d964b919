package server

import (
	"context"
	"encoding/json"
	"log"

	"pickaside/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventMessageReceived           = "message_received"
	EventConversationRead          = "conversation_read"
	EventConnectionRequestReceived = "connection_request_received"
	EventConnectionRequestSent     = "connection_request_sent"
	EventConnectionRequestAccepted = "connection_request_accepted"
	EventConnectionRequestDeclined = "connection_request_declined"
	EventJobPosted                 = "job_posted"
	EventApplicationStatusUpdated  = "application_status_updated"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}

func userSummary(user models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                  user.ID,
		"full_name":           user.FullName,
		"major":               user.Major,
		"profile_picture_url": user.ProfilePictureURL,
	}
}

func userSummaryPtr(user *models.User) map[string]interface{} {
	if user == nil {
		return nil
	}
	return userSummary(*user)
}

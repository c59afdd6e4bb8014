package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yeremiapane/restaurant-tab/config"
	"github.com/yeremiapane/restaurant-tab/utils"
)

const oneSignalAPIURL = "https://onesignal.com/api/v1/notifications"

// Notifier is how the ordering flow alerts a single person (a waiter or a
// participant) out-of-band. The core only decides when and with what text to
// call it; delivery belongs to the implementation.
type Notifier interface {
	Notify(playerID, title, message string)
}

// NotificationService delivers pushes through the OneSignal REST API.
type NotificationService struct {
	appID  string
	apiKey string
	client *http.Client
}

func NewNotificationService(cfg config.Config) *NotificationService {
	return &NotificationService{
		appID:  cfg.OneSignalAppID,
		apiKey: cfg.OneSignalAPIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends one push to one device. Failures are logged and swallowed: a
// lost push never fails the order flow that triggered it.
func (s *NotificationService) Notify(playerID, title, message string) {
	if playerID == "" || s.appID == "" {
		return
	}

	payload := map[string]interface{}{
		"app_id":             s.appID,
		"include_player_ids": []string{playerID},
		"headings":           map[string]string{"en": title},
		"contents":           map[string]string{"en": message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.ErrorLogger.Printf("onesignal: marshal payload: %v", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, oneSignalAPIURL, bytes.NewReader(body))
	if err != nil {
		utils.ErrorLogger.Printf("onesignal: build request: %v", err)
		return
	}
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		utils.ErrorLogger.Printf("onesignal: send notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.ErrorLogger.Printf("onesignal: API returned status %d", resp.StatusCode)
	}
}

// NopNotifier drops every notification. Used in tests and when OneSignal is
// not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(playerID, title, message string) {}

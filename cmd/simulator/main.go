package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-care/internal/health"
	"github.com/ukydev/fleet-care/internal/models"
)

// Equipment is the subset of the equipment list the simulator needs.
type Equipment struct {
	Tag      string          `json:"tag"`
	UnitType models.UnitType `json:"unit_type"`
	Reading  float64         `json:"reading"`
}

// Reading is the body posted for one counter sync.
type Reading struct {
	Reading float64   `json:"reading"`
	At      time.Time `json:"at"`
}

type settings struct {
	apiURL      string
	authToken   string
	interval    time.Duration
	daysPerTick float64
}

func loadSettings() settings {
	s := settings{
		apiURL:      "http://localhost:8080/api",
		authToken:   os.Getenv("SIM_AUTH_TOKEN"),
		interval:    2 * time.Second,
		daysPerTick: 1,
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		s.apiURL = v
	}
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			s.interval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("SIM_DAYS_PER_TICK"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.daysPerTick = f
		}
	}
	return s
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func authorizedRequest(method, target, token string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return httpClient.Do(req)
}

func fetchEquipment(apiURL, token string) ([]Equipment, error) {
	resp, err := authorizedRequest(http.MethodGet, apiURL+"/equipment", token, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("equipment list failed with status: %d", resp.StatusCode)
	}

	var list []Equipment
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return list, nil
}

// advance moves the counter forward by the assumed daily rate over days,
// with up to 25% jitter either way. Counters never move backwards.
func advance(eq *Equipment, days float64) {
	jitter := 1 + (rand.Float64()*2-1)*0.25
	eq.Reading += health.DailyRate(eq.UnitType) * days * jitter
}

func sendReading(apiURL, token string, eq Equipment, at time.Time) error {
	data, err := json.Marshal(Reading{Reading: eq.Reading, At: at})
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}
	target := fmt.Sprintf("%s/equipment/%s/readings", apiURL, url.PathEscape(eq.Tag))
	resp, err := authorizedRequest(http.MethodPost, target, token, data)
	if err != nil {
		return fmt.Errorf("failed to send reading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("reading rejected with status: %d", resp.StatusCode)
	}
	return nil
}

func tick(s settings, fleet []Equipment, at time.Time) int {
	sent := 0
	for i := range fleet {
		advance(&fleet[i], s.daysPerTick)
		if err := sendReading(s.apiURL, s.authToken, fleet[i], at); err != nil {
			log.WithError(err).WithField("tag", fleet[i].Tag).Error("Failed to sync reading")
			continue
		}
		sent++
	}
	return sent
}

func main() {
	s := loadSettings()

	log.WithFields(log.Fields{
		"api_url":       s.apiURL,
		"interval":      s.interval,
		"days_per_tick": s.daysPerTick,
	}).Info("Starting reading simulation")

	fleet, err := fetchEquipment(s.apiURL, s.authToken)
	if err != nil {
		log.WithError(err).Error("Ensure SIM_AUTH_TOKEN carries the operator role and the API is reachable. Exiting.")
		os.Exit(1)
	}
	if len(fleet) == 0 {
		log.Warn("No equipment registered. Exiting.")
		return
	}
	log.WithField("equipment", len(fleet)).Info("Loaded fleet")

	// Counters advance daysPerTick days per tick, but syncs are stamped
	// with the wall clock; the API rejects timestamps ahead of its own.
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for now := range ticker.C {
		sent := tick(s, fleet, now)
		log.WithFields(log.Fields{"sent": sent, "at": now}).Info("Synced readings")
	}
}

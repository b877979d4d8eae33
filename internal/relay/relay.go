// Package relay fans mirrored readings out to dashboards and long-term storage.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kirbo/go-sensorsim/internal/channels"
	"github.com/kirbo/go-sensorsim/internal/models"
	"github.com/kirbo/go-sensorsim/internal/sensor"
)

const (
	UpdateEvent  = "update"
	InitialEvent = "initial"
)

// Broadcaster pushes an event to every connected dashboard.
type Broadcaster interface {
	Broadcast(event string, msg interface{})
}

type Relay struct {
	store       Store
	broadcaster Broadcaster
	validator   *Validator
	cache       *cache.Cache
	logger      *log.Logger
	now         func() time.Time
}

func New(store Store, broadcaster Broadcaster, logger *log.Logger) *Relay {
	return &Relay{
		store:       store,
		broadcaster: broadcaster,
		validator:   &Validator{},
		cache:       cache.New(cache.NoExpiration, 0),
		logger:      logger,
		now:         time.Now,
	}
}

func (r *Relay) Validator() *Validator {
	return r.validator
}

func parseEnvelope(payload string) (env models.Envelope, err error) {
	err = json.Unmarshal([]byte(payload), &env)
	if err != nil {
		err = fmt.Errorf("parse envelope: %w", err)
	}
	return
}

// Handle processes one mirrored envelope. Storage failures are returned after
// the update has been broadcast.
func (r *Relay) Handle(ctx context.Context, payload string) error {
	env, err := parseEnvelope(payload)
	if err != nil {
		return err
	}

	issues := r.validator.Check(env.Reading)
	for _, issue := range issues {
		r.logger.Printf("[Validator] WARN sensor %d: %s", env.Reading.SensorID, issue)
	}
	r.logReport(env)

	msg := r.remember(env, len(issues) == 0)

	var storeErr error
	if r.store != nil {
		storeErr = r.store.InsertReading(ctx, env)
	}

	if r.broadcaster != nil {
		r.broadcaster.Broadcast(UpdateEvent, msg)
	}

	return storeErr
}

func (r *Relay) logReport(env models.Envelope) {
	rd := env.Reading
	r.logger.Printf("[DataLogger] id=%d name=%q temp=%v°C humidity=%v%% pressure=%v hPa light=%v lux ts=%d location=%q ack=%q",
		rd.SensorID, rd.SensorName, rd.Temperature, rd.Humidity, rd.Pressure, rd.LightIntensity, rd.Timestamp, rd.Location, env.Ack.Message)
}

// remember caches the latest message for the sensor and computes its ping,
// the milliseconds since the sensor was last seen.
func (r *Relay) remember(env models.Envelope, valid bool) models.BroadcastMessage {
	id := strconv.Itoa(int(env.Reading.SensorID))
	now := sensor.MakeTimestamp(r.now())

	var ping int64
	if value, found := r.cache.Get(channels.Seen + id); found {
		ping = now - value.(int64)
	}
	r.cache.Set(channels.Seen+id, now, cache.NoExpiration)

	msg := broadcastMessage(env, ping, valid)
	r.cache.Set(channels.Reading+id, msg, cache.NoExpiration)

	return msg
}

func broadcastMessage(env models.Envelope, ping int64, valid bool) models.BroadcastMessage {
	rd := env.Reading
	return models.BroadcastMessage{
		Timestamp:      rd.Timestamp,
		SensorID:       rd.SensorID,
		Name:           rd.SensorName,
		Location:       rd.Location,
		Temperature:    rd.Temperature,
		Humidity:       rd.Humidity,
		Pressure:       rd.Pressure,
		LightIntensity: rd.LightIntensity,
		Ping:           ping,
		Valid:          valid,
	}
}

// Latest returns the most recent message of every known sensor, ordered by id.
func (r *Relay) Latest() []models.BroadcastMessage {
	msgs := []models.BroadcastMessage{}
	for key, item := range r.cache.Items() {
		if !strings.HasPrefix(key, channels.Reading) {
			continue
		}
		msgs = append(msgs, item.Object.(models.BroadcastMessage))
	}

	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SensorID < msgs[j].SensorID })
	return msgs
}

// Warm seeds the cache from envelopes already stored, without storing or
// broadcasting them again.
func (r *Relay) Warm(payloads ...string) {
	for _, payload := range payloads {
		env, err := parseEnvelope(payload)
		if err != nil {
			r.logger.Printf("warm: %v", err)
			continue
		}
		issues, _ := inspect(env.Reading)
		id := strconv.Itoa(int(env.Reading.SensorID))
		r.cache.Set(channels.Reading+id, broadcastMessage(env, 0, len(issues) == 0), cache.NoExpiration)
	}
}

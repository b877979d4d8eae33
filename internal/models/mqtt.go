package models

import "time"

type MQTTUser struct {
	ClientID string `json:"clientId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type MQTTConfig struct {
	Broker         string        `json:"broker"`
	Topic          string        `json:"topic"`
	PublishTimeout time.Duration `json:"publishTimeout"`
	User           MQTTUser      `json:"user"`
}

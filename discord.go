package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auviewer/replay"

	client "github.com/hugolgst/rich-go/client"
)

var errNoDiscordApp = errors.New("discord rpc: no application id configured")

var discordStart time.Time
var discordReady bool

func initDiscordRPC(ctx context.Context, appID string) error {
	if appID == "" {
		return errNoDiscordApp
	}
	if err := client.Login(appID); err != nil {
		return fmt.Errorf("discord rpc login: %w", err)
	}
	discordReady = true
	discordStart = time.Now()
	go func() {
		<-ctx.Done()
		client.Logout()
	}()
	return nil
}

func setDiscordStatus(d *replay.Dataset) {
	if !discordReady {
		return
	}
	if err := client.SetActivity(client.Activity{
		State:   "Among Us Replay",
		Details: discordDetails(d),
		Timestamps: &client.Timestamps{
			Start: &discordStart,
		},
	}); err != nil {
		logError("discord rpc activity: %v", err)
	}
}

func discordDetails(d *replay.Dataset) string {
	return fmt.Sprintf("watching %d players: %s", len(d.Players), d.EndReason)
}

// Package presenter maps simulation events onto the presentation
// collaborators (effects, audio, notifications, body removal and UI refresh).
// The simulation never calls these directly; it only emits events.
package presenter

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-flightsim/pkg/entity"
	"github.com/opd-ai/go-flightsim/pkg/logging"
)

// Effects triggers a visual effect. position may be nil.
type Effects interface {
	Trigger(kind string, position *mgl64.Vec3, intensity float64)
}

// Audio plays a sound by identifier
type Audio interface {
	Play(sound string)
}

// Notifier shows a user notification
type Notifier interface {
	Notify(title, message string, duration time.Duration)
}

// BodyRemover removes a body from the world snapshot provider
type BodyRemover interface {
	RemoveBody(id entity.ID)
}

// UI requests a refresh of the heads-up display
type UI interface {
	Refresh()
}

// Collaborators groups the presentation sinks. Nil members are replaced by a
// LogPresenter.
type Collaborators struct {
	Effects  Effects
	Audio    Audio
	Notifier Notifier
	Remover  BodyRemover
	UI       UI
}

func (c Collaborators) withDefaults(fallback *LogPresenter) Collaborators {
	if c.Effects == nil {
		c.Effects = fallback
	}
	if c.Audio == nil {
		c.Audio = fallback
	}
	if c.Notifier == nil {
		c.Notifier = fallback
	}
	if c.Remover == nil {
		c.Remover = fallback
	}
	if c.UI == nil {
		c.UI = fallback
	}
	return c
}

// LogPresenter implements every collaborator by writing debug log entries.
// It is what a headless run uses.
type LogPresenter struct {
	logger *logging.Logger
}

// NewLogPresenter creates a LogPresenter writing to logger
func NewLogPresenter(logger *logging.Logger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

// Trigger implements Effects.
func (p *LogPresenter) Trigger(kind string, position *mgl64.Vec3, intensity float64) {
	ctx := context.Background()
	if position == nil {
		p.logger.Debug(ctx, "effect triggered", "effect", kind, "intensity", intensity)
		return
	}
	p.logger.Debug(ctx, "effect triggered",
		"effect", kind,
		"intensity", intensity,
		"x", position.X(), "y", position.Y(), "z", position.Z(),
	)
}

// Play implements Audio.
func (p *LogPresenter) Play(sound string) {
	p.logger.Debug(context.Background(), "sound played", "sound", sound)
}

// Notify implements Notifier.
func (p *LogPresenter) Notify(title, message string, duration time.Duration) {
	p.logger.Info(context.Background(), "notification",
		"title", title,
		"message", message,
		"duration", duration.String(),
	)
}

// RemoveBody implements BodyRemover.
func (p *LogPresenter) RemoveBody(id entity.ID) {
	p.logger.Debug(context.Background(), "body removal requested", "body_id", uint64(id))
}

// Refresh implements UI.
func (p *LogPresenter) Refresh() {}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultWidgetBackgroundColor = "#ffffff"
	DefaultWidgetTextColor       = "#000000"
	DefaultWidgetButtonColor     = "#2563eb"
)

// WidgetStyle is the embedded styling sub-document of a program. Empty
// fields fall back to the default palette when the widget is rendered.
type WidgetStyle struct {
	BackgroundColor string `json:"background_color" bson:"background_color"`
	TextColor       string `json:"text_color" bson:"text_color"`
	ButtonColor     string `json:"button_color" bson:"button_color"`
}

// ApplyDefaults fills every unset style field so a partially styled program
// still renders a complete widget.
func (w *WidgetStyle) ApplyDefaults() {
	if w.BackgroundColor == "" {
		w.BackgroundColor = DefaultWidgetBackgroundColor
	}
	if w.TextColor == "" {
		w.TextColor = DefaultWidgetTextColor
	}
	if w.ButtonColor == "" {
		w.ButtonColor = DefaultWidgetButtonColor
	}
}

type AffiliateProgram struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID        primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	Name           string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	CommissionRate float64            `json:"commission_rate" bson:"commission_rate" validate:"gte=0,lte=100"`
	WidgetStyle    WidgetStyle        `json:"widget_style" bson:"widget_style"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

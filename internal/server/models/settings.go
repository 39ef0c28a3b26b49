package models

import "time"

// NotificationSettings is one-to-one with a user and lazily created on first
// access.
type NotificationSettings struct {
	ID     string
	UserID string

	WeeklyDigest       bool
	DailyReminders     bool
	NewComments        bool
	NewMemories        bool
	Birthdays          bool
	Anniversaries      bool
	StoryPrompts       bool
	FamilyActivity     bool
	EmailNotifications bool
	PushNotifications  bool

	CreatedAt time.Time
}

// DefaultNotificationSettings returns the fixed defaults applied on lazy
// creation. Interruptive channels (daily reminders, push) start off.
func DefaultNotificationSettings(userID string) *NotificationSettings {
	return &NotificationSettings{
		UserID:             userID,
		WeeklyDigest:       true,
		DailyReminders:     false,
		NewComments:        true,
		NewMemories:        true,
		Birthdays:          true,
		Anniversaries:      true,
		StoryPrompts:       true,
		FamilyActivity:     true,
		EmailNotifications: true,
		PushNotifications:  false,
	}
}

type NotificationSettingsPatch struct {
	WeeklyDigest       *bool
	DailyReminders     *bool
	NewComments        *bool
	NewMemories        *bool
	Birthdays          *bool
	Anniversaries      *bool
	StoryPrompts       *bool
	FamilyActivity     *bool
	EmailNotifications *bool
	PushNotifications  *bool
}

func (p *NotificationSettingsPatch) Apply(s *NotificationSettings) {
	if p.WeeklyDigest != nil {
		s.WeeklyDigest = *p.WeeklyDigest
	}
	if p.DailyReminders != nil {
		s.DailyReminders = *p.DailyReminders
	}
	if p.NewComments != nil {
		s.NewComments = *p.NewComments
	}
	if p.NewMemories != nil {
		s.NewMemories = *p.NewMemories
	}
	if p.Birthdays != nil {
		s.Birthdays = *p.Birthdays
	}
	if p.Anniversaries != nil {
		s.Anniversaries = *p.Anniversaries
	}
	if p.StoryPrompts != nil {
		s.StoryPrompts = *p.StoryPrompts
	}
	if p.FamilyActivity != nil {
		s.FamilyActivity = *p.FamilyActivity
	}
	if p.EmailNotifications != nil {
		s.EmailNotifications = *p.EmailNotifications
	}
	if p.PushNotifications != nil {
		s.PushNotifications = *p.PushNotifications
	}
}

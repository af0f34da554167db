package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

func samplePerformances(now time.Time) []domain.Performance {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	show := func(title, description, genre string, price string, offsetDays, hour int) domain.Performance {
		return domain.Performance{
			Title:         title,
			Description:   description,
			Genre:         genre,
			Language:      "English",
			StartDateTime: day.AddDate(0, 0, offsetDays).Add(time.Duration(hour) * time.Hour),
			TicketPrice:   decimal.RequireFromString(price),
			CircleSeats:   domain.MaxCircleSeats,
			StallSeats:    domain.MaxStallSeats,
		}
	}

	return []domain.Performance{
		show("Hamlet", "The Prince of Denmark seeks revenge.", "Tragedy", "24.50", 1, 19),
		show("Hamlet", "The Prince of Denmark seeks revenge.", "Tragedy", "18.00", 2, 14),
		show("The Mousetrap", "A murder mystery in a snowbound guest house.", "Mystery", "21.00", 1, 20),
		show("Les Miserables", "Revolution and redemption in nineteenth century France.", "Musical", "35.75", 3, 19),
		show("A Midsummer Night's Dream", "Lovers, fairies and a troupe of actors in an Athenian wood.", "Comedy", "15.00", 4, 18),
	}
}

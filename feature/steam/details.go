package steam

import (
	"time"

	"steam-ledger/feature/games/models"
	"steam-ledger/feature/games/releasedate"
)

// Store categories that mark a game as playable together.
var (
	onlineCoopCategories = []int{1, 9, 38, 48}
	localCoopCategories  = []int{39, 24}
)

type appDetailsEnvelope struct {
	Success bool            `json:"success"`
	Data    *appDetailsData `json:"data"`
}

type appDetailsData struct {
	ShortDescription  string  `json:"short_description"`
	ControllerSupport *string `json:"controller_support"`
	Categories        []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"categories"`
	Metacritic *struct {
		Score int `json:"score"`
	} `json:"metacritic"`
	ReleaseDate *struct {
		ComingSoon bool   `json:"coming_soon"`
		Date       string `json:"date"`
	} `json:"release_date"`
}

func (d appDetailsData) hasCategory(ids []int) bool {
	for _, c := range d.Categories {
		for _, id := range ids {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func convertDetails(id models.GameId, d appDetailsData, now time.Time) models.GameDetails {
	localCoop := d.hasCategory(localCoopCategories)

	out := models.GameDetails{
		AppID:             id,
		Description:       d.ShortDescription,
		ControllerSupport: d.ControllerSupport,
		Coop:              localCoop || d.hasCategory(onlineCoopCategories),
		LocalCoop:         localCoop,
		Recorded:          now,
	}

	if d.Metacritic != nil && d.Metacritic.Score >= 0 && d.Metacritic.Score <= 100 {
		score := uint8(d.Metacritic.Score)
		out.MetacriticPercent = &score
	}

	// Without a release block the game is treated as not out yet.
	if rd := d.ReleaseDate; rd != nil {
		out.IsReleased = !rd.ComingSoon
		if rd.Date != "" {
			text := rd.Date
			out.ReleaseDate = &text
			out.ReleaseEstimate = releasedate.Parse(text)
		}
	}
	return out
}

package notion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"steam-ledger/feature/games/models"
)

// Property names of the games database.
const (
	propName    = "Name"
	propSteamID = "Steam ID"
	propState   = "State"
	propTags    = "Tags"
	propNotes   = "Notes"
	propRating  = "Rating"
	propCreated = "Created time"
)

type richText struct {
	PlainText string `json:"plain_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type property struct {
	Type        string         `json:"type"`
	Title       []richText     `json:"title"`
	RichText    []richText     `json:"rich_text"`
	Select      *selectOption  `json:"select"`
	MultiSelect []selectOption `json:"multi_select"`
	Number      *float64       `json:"number"`
	CreatedTime *time.Time     `json:"created_time"`
}

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

func plainText(parts []richText) *string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	if b.Len() == 0 {
		return nil
	}
	s := b.String()
	return &s
}

// lookup returns the named property, checking its type when present.
func (p page) lookup(name, kind string) (property, bool, error) {
	prop, ok := p.Properties[name]
	if !ok {
		return property{}, false, nil
	}
	if prop.Type != kind {
		return property{}, false, fmt.Errorf("property %q has type %q, want %q", name, prop.Type, kind)
	}
	return prop, true, nil
}

// toNote converts a page into a note. An error means the page cannot be used.
func (p page) toNote() (models.Note, error) {
	note := models.Note{NoteID: p.ID}

	state, ok, err := p.lookup(propState, "select")
	if err != nil {
		return note, err
	}
	if !ok {
		return note, fmt.Errorf("missing property %q", propState)
	}
	if state.Select != nil && state.Select.Name != "" {
		s := models.ParseGameState(state.Select.Name)
		note.State = &s
	}

	created, ok, err := p.lookup(propCreated, "created_time")
	if err != nil {
		return note, err
	}
	if !ok || created.CreatedTime == nil {
		return note, fmt.Errorf("missing property %q", propCreated)
	}
	note.Created = created.CreatedTime.UTC()

	if title, ok, err := p.lookup(propName, "title"); err != nil {
		return note, err
	} else if ok {
		if name := plainText(title.Title); name != nil {
			note.Name = *name
		}
	}

	if id, ok, err := p.lookup(propSteamID, "rich_text"); err != nil {
		return note, err
	} else if ok {
		note.SteamID = plainText(id.RichText)
	}

	if tags, ok, err := p.lookup(propTags, "multi_select"); err != nil {
		return note, err
	} else if ok {
		for _, t := range tags.MultiSelect {
			note.Tags = append(note.Tags, t.Name)
		}
	}

	if notes, ok, err := p.lookup(propNotes, "rich_text"); err != nil {
		return note, err
	} else if ok {
		note.Notes = plainText(notes.RichText)
	}

	if rating, ok, err := p.lookup(propRating, "number"); err != nil {
		return note, err
	} else if ok && rating.Number != nil {
		n := *rating.Number
		if n < 0 || n > 100 || n != float64(int(n)) {
			return note, fmt.Errorf("property %q out of range: %v", propRating, n)
		}
		r := uint8(n)
		note.Rating = &r
	}

	return note, nil
}

func textValue(content string) map[string]any {
	return map[string]any{"text": map[string]string{"content": content}}
}

func identifierProperties(appID models.GameId, name string) map[string]any {
	return map[string]any{
		propSteamID: map[string]any{"rich_text": []any{textValue(appID.String())}},
		propName:    map[string]any{"title": []any{textValue(name)}},
	}
}

func stateProperties(state models.GameState) map[string]any {
	return map[string]any{
		propState: map[string]any{"select": map[string]string{"name": state.String()}},
	}
}

func encodeProperties(props map[string]any) ([]byte, error) {
	return json.Marshal(map[string]any{"properties": props})
}

package league

import "fmt"

// League is one competition in the provider's sport catalog, for example
// "soccer_epl" in group "Soccer".
type League struct {
	Key          string
	Group        string
	Title        string
	Description  string
	Active       bool
	HasOutrights bool
}

func (l League) Validate() error {
	if l.Key == "" {
		return fmt.Errorf("league key is required")
	}
	if l.Title == "" {
		return fmt.Errorf("league title is required")
	}

	return nil
}

// TitleInput carries whatever is known about a competition. Every field is
// optional.
type TitleInput struct {
	SportKeyOrName     string
	Country            string
	LeagueName         string
	FallbackSportTitle string
}

// TitleInput describes l for ComposeTitle.
func (l League) TitleInput() TitleInput {
	return TitleInput{
		SportKeyOrName:     l.Key,
		FallbackSportTitle: l.Group,
	}
}

// DisplayTitle is the composed "Sport.Country.League" header for l.
func (l League) DisplayTitle() string {
	return ComposeTitle(l.TitleInput())
}

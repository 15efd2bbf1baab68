package match

import (
	"testing"

	"github.com/dren-arifi/isrcfind/internal/models"
)

func TestParseDescription(t *testing.T) {
	t.Run("Full Credits Block", func(t *testing.T) {
		description := `Official video.

Music & Produced: John Composer
Text: Jane Writer
Video: Studio Films
Special Guest: Famous Singer
Thanks to: The Whole Crew
Publisher: Acme Records
Licensing: Acme Licensing GmbH
ISRC: US-ABC-20-12345
UPC: 190295000000
`
		record := ParseDescription(description)

		if record.MusicProduced != "John Composer" {
			t.Errorf("MusicProduced = %q", record.MusicProduced)
		}
		if record.Text != "Jane Writer" {
			t.Errorf("Text = %q", record.Text)
		}
		if record.Video != "Studio Films" {
			t.Errorf("Video = %q", record.Video)
		}
		if record.SpecialGuest != "Famous Singer" {
			t.Errorf("SpecialGuest = %q", record.SpecialGuest)
		}
		if record.ThanksTo != "The Whole Crew" {
			t.Errorf("ThanksTo = %q", record.ThanksTo)
		}
		if record.Publisher != "Acme Records" {
			t.Errorf("Publisher = %q", record.Publisher)
		}
		if record.Licensing != "Acme Licensing GmbH" {
			t.Errorf("Licensing = %q", record.Licensing)
		}
		if record.ISRC != "US-ABC-20-12345" {
			t.Errorf("ISRC = %q", record.ISRC)
		}
		if record.UPC != "190295000000" {
			t.Errorf("UPC = %q", record.UPC)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		record := ParseDescription("Just a regular video description.\nNo credits here.")

		if record.ISRC != models.NA {
			t.Errorf("ISRC should default to %q, got %q", models.NA, record.ISRC)
		}
		if record.UPC != models.NA {
			t.Errorf("UPC should default to %q, got %q", models.NA, record.UPC)
		}
		if record.Publisher != "" {
			t.Errorf("Publisher should default empty, got %q", record.Publisher)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		record := ParseDescription("")
		if record.ISRC != models.NA || record.UPC != models.NA {
			t.Error("empty input should yield all-default record")
		}
	})

	t.Run("ISRC With Spaced Colon", func(t *testing.T) {
		record := ParseDescription("ISRC : US-ABC-20-12345")
		if record.ISRC != "US-ABC-20-12345" {
			t.Errorf("ISRC = %q, want US-ABC-20-12345", record.ISRC)
		}
	})

	t.Run("ISRC Mid Line", func(t *testing.T) {
		record := ParseDescription("Recording code ISRC: QZDA52012345 belongs to this release")
		if record.ISRC != "QZDA52012345 belongs to this release" {
			t.Errorf("ISRC = %q", record.ISRC)
		}
	})

	t.Run("Case Insensitive Prefixes", func(t *testing.T) {
		record := ParseDescription("PUBLISHER: Acme Records\nupc: 123456789")
		if record.Publisher != "Acme Records" {
			t.Errorf("Publisher = %q", record.Publisher)
		}
		if record.UPC != "123456789" {
			t.Errorf("UPC = %q", record.UPC)
		}
	})

	t.Run("No Colon Uses Whole Line", func(t *testing.T) {
		record := ParseDescription("Thanks to everyone involved")
		if record.ThanksTo != "Thanks to everyone involved" {
			t.Errorf("ThanksTo = %q", record.ThanksTo)
		}
	})

	t.Run("Last Match Wins", func(t *testing.T) {
		record := ParseDescription("Publisher: First Label\nPublisher: Second Label")
		if record.Publisher != "Second Label" {
			t.Errorf("Publisher = %q, want Second Label", record.Publisher)
		}
	})

	t.Run("Music Prefix Requires Produced", func(t *testing.T) {
		record := ParseDescription("Music video by Some Artist")
		if record.MusicProduced != "" {
			t.Errorf("MusicProduced = %q, want empty", record.MusicProduced)
		}
	})

	t.Run("Original Value Casing Preserved", func(t *testing.T) {
		record := ParseDescription("Video: DOP Jane McFrame")
		if record.Video != "DOP Jane McFrame" {
			t.Errorf("Video = %q", record.Video)
		}
	})
}

func TestCleanTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "official video suffix",
			title: "Rick Astley - Never Gonna Give You Up (Official Video)",
			want:  "Rick Astley - Never Gonna Give You Up",
		},
		{
			name:  "brackets and parens",
			title: "Artist - Song [Lyrics] (Audio)",
			want:  "Artist - Song",
		},
		{
			name:  "standalone year",
			title: "Artist - Song 2019",
			want:  "Artist - Song",
		},
		{
			name:  "youtube tab suffix",
			title: "Artist - Song - YouTube",
			want:  "Artist - Song",
		},
		{
			name:  "whitespace collapsed",
			title: "  Artist   -   Song  ",
			want:  "Artist - Song",
		},
		{
			name:  "plain title unchanged",
			title: "Artist - Song",
			want:  "Artist - Song",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFallbackQuery(t *testing.T) {
	t.Run("Truncates To Ten Words", func(t *testing.T) {
		description := "one two three four five six seven eight nine ten eleven twelve"
		if got := FallbackQuery(description); got != "one two three four five six seven eight nine ten" {
			t.Errorf("FallbackQuery = %q", got)
		}
	})

	t.Run("Short Description Unchanged", func(t *testing.T) {
		if got := FallbackQuery("short description"); got != "short description" {
			t.Errorf("FallbackQuery = %q", got)
		}
	})

	t.Run("Blank Yields Empty", func(t *testing.T) {
		if got := FallbackQuery("   \n  "); got != "" {
			t.Errorf("FallbackQuery = %q, want empty", got)
		}
	})
}

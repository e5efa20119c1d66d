package service

import "planboard/internal/domain"

// DefaultBulletTemplates is the built-in bilingual phrase library, seeded
// once into an empty database.
func DefaultBulletTemplates() []*domain.BulletTemplate {
	return []*domain.BulletTemplate{
		{
			Theme:         "motor-skills",
			FiText:        "Harjoittelemme saksilla leikkaamista",
			EnText:        "We practice cutting with scissors",
			FiDescription: "Hienomotoriikan harjoitus",
			EnDescription: "Fine motor skills practice",
		},
		{
			Theme:         "motor-skills",
			FiText:        "Liikumme ulkona joka päivä",
			EnText:        "We move outdoors every day",
			FiDescription: "Karkeamotoriikka ja ulkoilu",
			EnDescription: "Gross motor skills and outdoor time",
		},
		{
			Theme:  "language",
			FiText: "Luemme yhdessä kuvakirjoja",
			EnText: "We read picture books together",
		},
		{
			Theme:  "language",
			FiText: "Nimeämme arjen esineitä molemmilla kielillä",
			EnText: "We name everyday objects in both languages",
		},
		{
			Theme:         "social",
			FiText:        "Harjoittelemme vuoron odottamista",
			EnText:        "We practice waiting for our turn",
			FiDescription: "Sosiaaliset taidot pienryhmässä",
			EnDescription: "Social skills in small groups",
		},
		{
			Theme:  "social",
			FiText: "Opettelemme pyytämään ja antamaan apua",
			EnText: "We learn to ask for and offer help",
		},
		{
			Theme:  "arts",
			FiText: "Maalaamme vesiväreillä",
			EnText: "We paint with watercolors",
		},
		{
			Theme:         "music",
			FiText:        "Laulamme ja soitamme rytmisoittimia",
			EnText:        "We sing and play rhythm instruments",
			FiDescription: "Musiikkihetki aamupiirissä",
			EnDescription: "Music time in morning circle",
		},
		{
			Theme:  "nature",
			FiText: "Tutkimme lähimetsän luontoa",
			EnText: "We explore nature in the nearby forest",
		},
		{
			Theme:  "self-care",
			FiText: "Harjoittelemme pukemista itsenäisesti",
			EnText: "We practice dressing ourselves",
		},
	}
}

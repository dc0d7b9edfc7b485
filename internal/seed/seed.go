// Package seed loads a YAML fixture of locations and landing page content.
package seed

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"eggslist/internal/model"
	"eggslist/internal/service"
)

type Fixture struct {
	Countries    []Country     `yaml:"countries"`
	Testimonials []Testimonial `yaml:"testimonials"`
	FAQs         []FAQ         `yaml:"faqs"`
	TeamMembers  []TeamMember  `yaml:"team_members"`
}

type Country struct {
	Name   string  `yaml:"name"`
	States []State `yaml:"states"`
}

type State struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"full_name"`
	Cities   []City `yaml:"cities"`
}

type City struct {
	Name     string          `yaml:"name"`
	Location *model.GeoPoint `yaml:"location"`
	ZipCodes []ZipCode       `yaml:"zip_codes"`
}

type ZipCode struct {
	Name       string          `yaml:"name"`
	SystemName string          `yaml:"system_name"`
	Location   *model.GeoPoint `yaml:"location"`
}

type Testimonial struct {
	AuthorName string `yaml:"author_name"`
	Body       string `yaml:"body"`
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type TeamMember struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	JobTitle  string `yaml:"job_title"`
}

// Load decodes a fixture. Unknown keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Stats counts the rows a Seeder created.
type Stats struct {
	Countries, States, Cities, ZipCodes int
	Testimonials, FAQs, TeamMembers     int
}

// Seeder writes a Fixture through the services so slugs, positions and
// cache invalidation follow the normal write path. Each section is skipped
// when its table already has rows, which makes reruns harmless.
type Seeder struct {
	locations service.LocationService
	content   service.ContentService
	logger    *zap.Logger
}

func NewSeeder(locations service.LocationService, content service.ContentService, logger *zap.Logger) *Seeder {
	return &Seeder{locations: locations, content: content, logger: logger}
}

func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Stats, error) {
	var st Stats
	if err := s.applyLocations(ctx, f.Countries, &st); err != nil {
		return st, err
	}
	if err := s.applyContent(ctx, f, &st); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Seeder) applyLocations(ctx context.Context, countries []Country, st *Stats) error {
	if len(countries) == 0 {
		return nil
	}
	existing, err := s.locations.ListStates(ctx)
	if err != nil {
		return fmt.Errorf("list states: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("seed_skip", zap.String("section", "locations"), zap.Int("existing_states", len(existing)))
		return nil
	}

	for _, c := range countries {
		country, err := s.locations.CreateCountry(ctx, service.CountryInput{Name: c.Name})
		if err != nil {
			return fmt.Errorf("country %q: %w", c.Name, err)
		}
		st.Countries++
		for _, sr := range c.States {
			state, err := s.locations.CreateState(ctx, service.StateInput{Country: country.Slug, Name: sr.Name, FullName: sr.FullName})
			if err != nil {
				return fmt.Errorf("state %q: %w", sr.Name, err)
			}
			st.States++
			for _, cr := range sr.Cities {
				city, err := s.locations.CreateCity(ctx, service.CityInput{State: state.Slug, Name: cr.Name, Location: cr.Location})
				if err != nil {
					return fmt.Errorf("city %q: %w", cr.Name, err)
				}
				st.Cities++
				for _, z := range cr.ZipCodes {
					_, err := s.locations.CreateZipCode(ctx, service.ZipCodeInput{
						City:       city.Slug,
						Name:       z.Name,
						SystemName: z.SystemName,
						Location:   z.Location,
					})
					if err != nil {
						return fmt.Errorf("zip code %q: %w", z.Name, err)
					}
					st.ZipCodes++
				}
			}
		}
	}
	return nil
}

func (s *Seeder) applyContent(ctx context.Context, f *Fixture, st *Stats) error {
	if len(f.Testimonials) > 0 {
		existing, err := s.content.ListTestimonials(ctx)
		if err != nil {
			return fmt.Errorf("list testimonials: %w", err)
		}
		if len(existing) == 0 {
			for _, t := range f.Testimonials {
				if _, err := s.content.CreateTestimonial(ctx, service.TestimonialInput{AuthorName: t.AuthorName, Body: t.Body}); err != nil {
					return fmt.Errorf("testimonial by %q: %w", t.AuthorName, err)
				}
				st.Testimonials++
			}
		}
	}

	if len(f.FAQs) > 0 {
		existing, err := s.content.ListFAQs(ctx)
		if err != nil {
			return fmt.Errorf("list faqs: %w", err)
		}
		if len(existing) == 0 {
			for _, q := range f.FAQs {
				if _, err := s.content.CreateFAQ(ctx, service.FAQInput{Question: q.Question, Answer: q.Answer}); err != nil {
					return fmt.Errorf("faq %q: %w", q.Question, err)
				}
				st.FAQs++
			}
		}
	}

	if len(f.TeamMembers) > 0 {
		existing, err := s.content.ListTeamMembers(ctx)
		if err != nil {
			return fmt.Errorf("list team members: %w", err)
		}
		if len(existing) == 0 {
			for _, m := range f.TeamMembers {
				in := service.TeamMemberInput{FirstName: m.FirstName, LastName: m.LastName, JobTitle: m.JobTitle}
				if _, err := s.content.CreateTeamMember(ctx, in); err != nil {
					return fmt.Errorf("team member %q: %w", m.FirstName+" "+m.LastName, err)
				}
				st.TeamMembers++
			}
		}
	}
	return nil
}

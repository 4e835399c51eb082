package services

import (
	"context"

	"github.com/blogem/campus-admin/faq"
	"github.com/blogem/campus-admin/models"
)

// FAQService answers the static campus questions. It never touches the store.
type FAQService interface {
	LibraryName(ctx context.Context) models.Response
	CafeteriaName(ctx context.Context) models.Response
	CafeteriaTimings(ctx context.Context) models.Response
	LibraryHours(ctx context.Context) models.Response
	LunchTiming(ctx context.Context) models.Response
}

type faqService struct {
	*base
	facts *faq.Facts
}

// NewFAQService creates a new FAQ service
func NewFAQService(facts *faq.Facts, b *base) FAQService {
	return &faqService{base: b, facts: facts}
}

func (s *faqService) LibraryName(ctx context.Context) models.Response {
	c := s.begin(OpLibraryName)
	c.logger.Info("getting library name")
	return c.success("Library name retrieved successfully", map[string]any{
		"library_name": s.facts.Library.Name,
	})
}

func (s *faqService) CafeteriaName(ctx context.Context) models.Response {
	c := s.begin(OpCafeteriaName)
	c.logger.Info("getting cafeteria name")
	return c.success("Cafeteria name retrieved successfully", map[string]any{
		"cafeteria_name": s.facts.Cafeteria.Name,
	})
}

func (s *faqService) CafeteriaTimings(ctx context.Context) models.Response {
	c := s.begin(OpCafeteriaTimings)
	c.logger.Info("getting cafeteria timings")

	cafeteria := s.facts.Cafeteria
	return c.success(
		"Cafeteria timings retrieved successfully. The cafeteria name is '"+cafeteria.Name+"'.",
		map[string]any{
			"cafeteria_timings": map[string]string{
				"campus_name":    s.facts.CampusName,
				"cafeteria_name": cafeteria.Name,
				"hours":          cafeteria.Hours,
				"breakfast":      cafeteria.Breakfast,
				"lunch":          cafeteria.Lunch,
				"dinner":         cafeteria.Dinner,
				"weekend_hours":  cafeteria.WeekendHours,
			},
		},
	)
}

func (s *faqService) LibraryHours(ctx context.Context) models.Response {
	c := s.begin(OpLibraryHours)
	c.logger.Info("getting library hours")

	library := s.facts.Library
	return c.success(
		"Library hours retrieved successfully. The library name is '"+library.Name+"'.",
		map[string]any{
			"library_hours": map[string]string{
				"campus_name":   s.facts.CampusName,
				"library_name":  library.Name,
				"monday_friday": library.MondayFriday,
				"saturday":      library.Saturday,
				"sunday":        library.Sunday,
				"study_rooms":   library.StudyRooms,
			},
		},
	)
}

// LunchTiming reuses the cafeteria lunch window as the lunch hours
func (s *faqService) LunchTiming(ctx context.Context) models.Response {
	c := s.begin(OpLunchTiming)
	c.logger.Info("getting lunch timing")

	return c.success("Lunch timing retrieved successfully", map[string]any{
		"lunch_timing": map[string]string{
			"campus_name":   s.facts.CampusName,
			"lunch_hours":   s.facts.Cafeteria.Lunch,
			"service_type":  s.facts.Lunch.ServiceType,
			"days":          s.facts.Lunch.Days,
			"weekend_lunch": s.facts.Lunch.WeekendLunch,
		},
	})
}

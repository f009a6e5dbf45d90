package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	domainrepo "github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

// SeedService генерирует демонстрационные данные для разработки.
type SeedService struct {
	userRepo  *repository.UserRepository
	skillRepo *repository.SkillRepository
	swapRepo  domainrepo.SwapRepository
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository, swapRepo domainrepo.SwapRepository) *SeedService {
	return &SeedService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
		swapRepo:  swapRepo,
	}
}

type seedSkill struct {
	title       string
	description string
	category    string
	level       string
	direction   string
	tags        []string
}

type seedUser struct {
	email        string
	displayName  string
	location     string
	availability []string
	skills       []seedSkill
}

// SeedData создаёт фиксированные демо-профили и, при необходимости,
// дополнительных случайных пользователей с навыками.
func (s *SeedService) SeedData(ctx context.Context, extraUsers int) error {
	rand.Seed(time.Now().UnixNano())

	if err := s.seedDemoUsers(ctx); err != nil {
		return fmt.Errorf("seed service: failed to seed demo users: %w", err)
	}

	if extraUsers > 0 {
		if err := s.generateUsers(ctx, extraUsers); err != nil {
			return fmt.Errorf("seed service: failed to generate users: %w", err)
		}
	}

	return nil
}

// seedDemoUsers создаёт известный набор профилей. Повторный запуск
// пропускает уже существующие email.
func (s *SeedService) seedDemoUsers(ctx context.Context) error {
	demo := []seedUser{
		{
			email:        "sarah.chen@example.com",
			displayName:  "Sarah Chen",
			location:     "San Francisco, CA",
			availability: []string{"Weekends", "Evenings"},
			skills: []seedSkill{
				{
					title:       "Guitar Playing",
					description: "Acoustic and electric guitar lessons for all levels",
					category:    "Music",
					level:       models.SkillLevelAdvanced,
					direction:   models.SkillDirectionOffered,
					tags:        []string{"acoustic", "electric", "music theory"},
				},
				{
					title:       "React Development",
					description: "Want to learn modern frontend development",
					category:    "Programming",
					level:       models.SkillLevelBeginner,
					direction:   models.SkillDirectionWanted,
					tags:        []string{"javascript", "frontend"},
				},
			},
		},
		{
			email:        "alex.rodriguez@example.com",
			displayName:  "Alex Rodriguez",
			location:     "Austin, TX",
			availability: []string{"Weekdays", "Flexible"},
			skills: []seedSkill{
				{
					title:       "React Development",
					description: "Building production web apps with React and TypeScript",
					category:    "Programming",
					level:       models.SkillLevelExpert,
					direction:   models.SkillDirectionOffered,
					tags:        []string{"javascript", "typescript", "frontend"},
				},
				{
					title:       "Spanish Language",
					description: "Native speaker offering conversational practice",
					category:    "Languages",
					level:       models.SkillLevelExpert,
					direction:   models.SkillDirectionOffered,
					tags:        []string{"conversation", "grammar"},
				},
				{
					title:       "Yoga Instruction",
					description: "Looking for a patient yoga teacher",
					category:    "Fitness",
					level:       models.SkillLevelBeginner,
					direction:   models.SkillDirectionWanted,
					tags:        []string{"wellness"},
				},
			},
		},
		{
			email:        "emily.johnson@example.com",
			displayName:  "Emily Johnson",
			location:     "Portland, OR",
			availability: []string{"Weekends"},
			skills: []seedSkill{
				{
					title:       "Yoga Instruction",
					description: "Certified vinyasa instructor, beginner friendly classes",
					category:    "Fitness",
					level:       models.SkillLevelAdvanced,
					direction:   models.SkillDirectionOffered,
					tags:        []string{"vinyasa", "wellness"},
				},
				{
					title:       "Digital Photography",
					description: "Portrait and landscape photography basics",
					category:    "Creative",
					level:       models.SkillLevelIntermediate,
					direction:   models.SkillDirectionOffered,
					tags:        []string{"portrait", "landscape"},
				},
				{
					title:       "Python Programming",
					description: "Want to automate photo workflows",
					category:    "Programming",
					level:       models.SkillLevelBeginner,
					direction:   models.SkillDirectionWanted,
					tags:        []string{"automation"},
				},
			},
		},
	}

	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	// Запоминаем созданные записи, чтобы связать их демонстрационным обменом.
	createdUsers := make(map[string]*models.User)
	createdSkills := make(map[string]*models.Skill)

	for _, du := range demo {
		if _, err := s.userRepo.GetByEmail(ctx, du.email); err == nil {
			continue
		}

		location := du.location
		user := &models.User{
			Email:        du.email,
			DisplayName:  du.displayName,
			PasswordHash: string(passwordHash),
			Location:     &location,
			IsPublic:     true,
			Availability: du.availability,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		createdUsers[du.email] = user

		for _, ds := range du.skills {
			skill := &models.Skill{
				OwnerID:     user.ID,
				Title:       ds.title,
				Description: ds.description,
				Category:    ds.category,
				Level:       ds.level,
				Direction:   ds.direction,
				Tags:        ds.tags,
				IsActive:    true,
			}
			if err := s.skillRepo.Create(ctx, skill); err != nil {
				return fmt.Errorf("failed to create skill: %w", err)
			}
			createdSkills[du.email+"/"+ds.title] = skill
		}
	}

	return s.seedDemoSwap(ctx, createdUsers, createdSkills)
}

// seedDemoSwap создаёт один ожидающий запрос на обмен между демо-профилями.
// Выполняется только при первом запуске, когда оба профиля созданы заново.
func (s *SeedService) seedDemoSwap(ctx context.Context, users map[string]*models.User, skills map[string]*models.Skill) error {
	sarah := users["sarah.chen@example.com"]
	alex := users["alex.rodriguez@example.com"]
	guitar := skills["sarah.chen@example.com/Guitar Playing"]
	react := skills["alex.rodriguez@example.com/React Development"]
	if sarah == nil || alex == nil || guitar == nil || react == nil {
		return nil
	}

	message := "Привет! Научу играть на гитаре в обмен на уроки React."
	swap, err := entity.NewSwapRequest(sarah.ID, alex.ID, guitar.ID, react.ID, &message)
	if err != nil {
		return fmt.Errorf("failed to build demo swap: %w", err)
	}

	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return fmt.Errorf("failed to create demo swap: %w", err)
	}
	return nil
}

// generateUsers создаёт случайных пользователей с навыками.
func (s *SeedService) generateUsers(ctx context.Context, count int) error {
	firstNames := []string{
		"James", "Olivia", "Liam", "Emma", "Noah", "Ava", "Ethan", "Sophia",
		"Mason", "Isabella", "Lucas", "Mia", "Logan", "Charlotte", "Daniel", "Amelia",
	}
	lastNames := []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Martinez", "Lopez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore", "Clark",
	}
	domains := []string{"gmail.com", "outlook.com", "yahoo.com", "proton.me"}

	locations := []string{
		"San Francisco, CA", "Austin, TX", "Portland, OR", "Seattle, WA", "Denver, CO",
		"Chicago, IL", "New York, NY", "Boston, MA", "Miami, FL", "Nashville, TN",
	}

	availabilityOptions := []string{"Weekends", "Evenings", "Weekdays", "Flexible"}

	categories := map[string][]string{
		"Programming": {"Python Programming", "React Development", "Go Backend Development", "iOS Development", "Data Analysis"},
		"Music":       {"Guitar Playing", "Piano Lessons", "Music Production", "Singing"},
		"Languages":   {"Spanish Language", "French Language", "Japanese Language", "German Language"},
		"Creative":    {"Digital Photography", "Watercolor Painting", "Creative Writing", "Video Editing"},
		"Fitness":     {"Yoga Instruction", "Personal Training", "Rock Climbing", "Swimming"},
	}
	categoryNames := []string{"Programming", "Music", "Languages", "Creative", "Fitness"}

	levels := []string{
		models.SkillLevelBeginner,
		models.SkillLevelIntermediate,
		models.SkillLevelAdvanced,
		models.SkillLevelExpert,
	}

	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		email := fmt.Sprintf("%s.%s.%d@%s",
			strings.ToLower(firstName), strings.ToLower(lastName), rand.Intn(10000), domains[rand.Intn(len(domains))])
		location := locations[rand.Intn(len(locations))]

		numAvailability := rand.Intn(2) + 1
		availability := make([]string, 0, numAvailability)
		seen := make(map[string]bool)
		for len(availability) < numAvailability {
			opt := availabilityOptions[rand.Intn(len(availabilityOptions))]
			if !seen[opt] {
				availability = append(availability, opt)
				seen[opt] = true
			}
		}

		user := &models.User{
			Email:        email,
			DisplayName:  fmt.Sprintf("%s %s", firstName, lastName),
			PasswordHash: string(passwordHash),
			Location:     &location,
			IsPublic:     true,
			Availability: availability,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		// Каждому пользователю хотя бы один предлагаемый и один желаемый навык
		numSkills := rand.Intn(3) + 2
		usedTitles := make(map[string]bool)
		for j := 0; j < numSkills; j++ {
			category := categoryNames[rand.Intn(len(categoryNames))]
			titles := categories[category]
			title := titles[rand.Intn(len(titles))]
			if usedTitles[title] {
				continue
			}
			usedTitles[title] = true

			direction := models.SkillDirectionOffered
			if j == 1 || (j > 1 && rand.Float32() > 0.6) {
				direction = models.SkillDirectionWanted
			}

			skill := &models.Skill{
				OwnerID:     user.ID,
				Title:       title,
				Description: fmt.Sprintf("%s: обмен опытом и совместная практика", title),
				Category:    category,
				Level:       levels[rand.Intn(len(levels))],
				Direction:   direction,
				Tags:        []string{strings.ToLower(category)},
				IsActive:    true,
			}

			if err := s.skillRepo.Create(ctx, skill); err != nil {
				return fmt.Errorf("failed to create skill: %w", err)
			}
		}
	}

	return nil
}

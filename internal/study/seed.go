package study

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCategories is the fixed template every new user starts with.
var DefaultCategories = []Category{
	{
		Name:        "Data Structures & Algorithms",
		Description: "Master problem-solving with efficient algorithms",
		Icon:        "Code2",
		Color:       "from-indigo-500 to-purple-600",
		TotalTopics: 25,
	},
	{
		Name:        "Development",
		Description: "Build modern web and mobile applications",
		Icon:        "Monitor",
		Color:       "from-purple-500 to-pink-600",
		TotalTopics: 30,
	},
	{
		Name:        "System Design",
		Description: "Design scalable and reliable systems",
		Icon:        "Network",
		Color:       "from-emerald-500 to-teal-600",
		TotalTopics: 20,
	},
}

// SeedDefaultCategories inserts the default categories for userID using tx,
// so it can run inside the registration transaction.
func SeedDefaultCategories(tx *gorm.DB, userID uint64) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := make([]Category, len(DefaultCategories))
	for i, c := range DefaultCategories {
		c.UserID = userID
		c.CreatedAt = now
		c.UpdatedAt = now
		rows[i] = c
	}
	return tx.Create(&rows).Error
}

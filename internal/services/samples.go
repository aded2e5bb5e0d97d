package services

import (
	"time"

	"github.com/arnold/visiongoals/internal/models"
)

var sampleGoals = []struct {
	title       string
	description string
	category    models.Category
}{
	{"Complete Executive Leadership Program", "Enroll and complete a leadership program to enhance management skills and strategic thinking for leading larger engineering teams.", models.CategoryCareer},
	{"Implement Quarterly Family Adventures", "Plan and execute one unique family adventure each quarter (e.g., camping in Yosemite, road trip to Oregon, Disneyland, skiing in Tahoe).", models.CategoryRelationships},
	{"Achieve 15% Body Fat", "Focus on strength training 3x/week, maintain regular cardio, and follow a balanced nutrition plan while managing work stress.", models.CategoryHealth},
	{"Max Out 401(k) and Mega Backdoor Roth", "Optimize retirement savings by maximizing 401(k) contributions and utilizing mega backdoor Roth IRA conversion strategies.", models.CategoryFinancial},
	{"Learn System Design Patterns", "Study and implement modern distributed systems patterns to better architect solutions for scale.", models.CategoryPersonal},
	{"Establish College Savings Plans", "Set up and maintain 529 plans for all three kids with regular monthly contributions.", models.CategoryFinancial},
	{"Weekly Date Nights", "Schedule and maintain regular date nights with spouse to maintain strong relationship despite busy schedule.", models.CategoryRelationships},
	{"Meditation and Mindfulness Practice", "Develop a consistent meditation practice (20 mins daily) to manage work stress and improve focus.", models.CategoryHealth},
	{"Build Engineering Team Documentation", "Create comprehensive documentation for team processes, architecture decisions, and onboarding procedures.", models.CategoryCareer},
	{"Read 12 Leadership Books", "Read one leadership or management book per month to continue growing as a leader.", models.CategoryPersonal},
	{"Optimize Stock Portfolio", "Review and rebalance investment portfolio quarterly, focusing on long-term growth and risk management.", models.CategoryFinancial},
	{"Implement Team Mentorship Program", "Create and launch a structured mentorship program within the engineering organization.", models.CategoryCareer},
}

// SampleGoals returns the starter collection shown on a first run.
func SampleGoals(now time.Time) []models.Goal {
	goals := make([]models.Goal, 0, len(sampleGoals))
	for _, s := range sampleGoals {
		goals = append(goals, models.NewGoal(s.title, s.description, s.category, now))
	}
	return goals
}

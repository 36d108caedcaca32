package service

import "studypal_backend/internal/model"

// CalculateMasteryLevel 由主题统计值推导精通等级，从高到低逐级匹配
func CalculateMasteryLevel(xpEarned, accuracyPct, testsCompleted, flashcardsReviewed int) model.MasteryLevel {
	if xpEarned >= 1000 && accuracyPct >= 90 && testsCompleted >= 3 {
		return model.MasteryMaster
	}
	if xpEarned >= 300 && accuracyPct >= 80 {
		return model.MasteryProficient
	}
	if xpEarned >= 50 || flashcardsReviewed >= 5 {
		return model.MasteryLearning
	}
	return model.MasteryNovice
}

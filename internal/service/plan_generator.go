package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/util"
	"time"
)

// GeneratePlanTasks 从今天到目标日（含）为每个时间段排任务
// 主题按单一游标轮转；卡片/刷题按 (dayIndex+slotIndex) 奇偶交替；
// 每 4 天在次日插入 30 分钟复习日；每 7 天在当天追加 30 分钟小模考
func GeneratePlanTasks(userID uint, topics []model.Topic, studyTimes []string, start, target time.Time) []model.StudyTask {
	startDay := util.StartOfDay(start)
	targetDay := util.StartOfDay(target)

	var studyDates []time.Time
	for d := startDay; !d.After(targetDay); d = d.AddDate(0, 0, 1) {
		studyDates = append(studyDates, d)
	}
	if len(studyDates) == 0 || len(topics) == 0 || len(studyTimes) == 0 {
		return nil
	}

	tasksPerDay := len(studyTimes)
	const timePerTask = 15

	var tasks []model.StudyTask
	topicIndex := 0

	for dayIndex, studyDate := range studyDates {
		for slotIndex := 0; slotIndex < tasksPerDay; slotIndex++ {
			topic := topics[topicIndex%len(topics)]
			isFlashcard := (dayIndex+slotIndex)%2 == 0

			task := model.StudyTask{
				UserID:        userID,
				TopicID:       topic.ID,
				TaskType:      model.TaskQuestion,
				Title:         "Questions: " + topic.Name,
				Description:   "Answer practice questions",
				ScheduledDate: studyDate,
				TimeMinutes:   timePerTask,
			}
			if isFlashcard {
				task.TaskType = model.TaskFlashcard
				task.Title = "Flashcards: " + topic.Name
				task.Description = "Practice flashcards for this topic"
			}
			tasks = append(tasks, task)

			topicIndex++
		}

		// 复习日：每 4 天一次，排在次日，最后一天不排
		if (dayIndex+1)%4 == 0 && dayIndex < len(studyDates)-1 {
			tasks = append(tasks, model.StudyTask{
				UserID:        userID,
				TopicID:       topics[0].ID,
				TaskType:      model.TaskFlashcard,
				Title:         "🔁 Review Day",
				Description:   "Review weak flashcards from previous topics",
				ScheduledDate: studyDates[dayIndex+1],
				TimeMinutes:   30,
			})
		}

		// 小模考：每 7 天一次，排在当天
		if (dayIndex+1)%7 == 0 {
			tasks = append(tasks, model.StudyTask{
				UserID:        userID,
				TopicID:       topics[0].ID,
				TaskType:      model.TaskTest,
				Title:         "📝 Mini Mock Test",
				Description:   "Complete a timed practice test",
				ScheduledDate: studyDate,
				TimeMinutes:   30,
			})
		}
	}

	return tasks
}

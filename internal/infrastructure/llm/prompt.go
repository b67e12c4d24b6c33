package llm

import (
	"fmt"
	"strings"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

const maxPromptTitles = 50

// Action picks the audience verb for a category.
func Action(category string) string {
	switch {
	case strings.Contains(category, "Оренда"):
		return "знайти орендарів на"
	case strings.Contains(category, "Продаж"), strings.Contains(category, "Авто"):
		return "знайти покупців на"
	default:
		return "знайти клієнтів на"
	}
}

// Topic is the working title of the article for a task.
func Topic(task domain.Task) string {
	return fmt.Sprintf("Як %s %s в м. %s (%s)", Action(task.Category), task.Category, task.City, task.Country)
}

// BuildPrompt renders the generation prompt.
func BuildPrompt(req ports.GenerationRequest) string {
	task := req.Task
	var b strings.Builder

	b.WriteString("Напиши детальну, корисну SEO-статтю українською мовою для сайту UkrFix.com.\n\n")
	fmt.Fprintf(&b, "Тема: %s\n\n", Topic(task))
	fmt.Fprintf(&b, "Цільова аудиторія: українці, які живуть у місті %s або планують там працювати чи вести бізнес.\n\n", task.City)

	contextText := strings.TrimSpace(req.Context)
	if contextText != "" {
		fmt.Fprintf(&b, "Актуальні дані з пошуку (використовуй як контекст):\n%s\n\n", contextText)
	}

	titles := req.RecentTitles
	if len(titles) > maxPromptTitles {
		titles = titles[len(titles)-maxPromptTitles:]
	}
	if len(titles) > 0 {
		b.WriteString("Заголовок має відрізнятися від уже опублікованих:\n")
		for _, title := range titles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `Структура статті (HTML, використовуй h1, h2, h3, p, ul):
1. Вступ: ситуація на ринку "%[1]s" у місті %[2]s. Чи є попит?
2. Де шукати клієнтів (місцеві сайти оголошень у країні %[3]s, групи Facebook).
3. Чому UkrFix: безкоштовно, для своїх, зручно.
4. Покрокова інструкція: як скласти оголошення, щоб телефонували (додай приклад тексту).
5. Висновок.

Відповідай лише JSON-об'єктом без пояснень:
{"title": "заголовок до 60 символів", "meta_description": "опис до 160 символів", "tags": ["3-6 коротких тегів"], "html_content": "повний HTML статті, що починається з <h1>"}
`, task.Category, task.City, task.Country)

	return b.String()
}

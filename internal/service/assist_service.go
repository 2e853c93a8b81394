package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"postpilot/internal/llm"
	"postpilot/internal/transfer"
)

// AssistService generates post drafts and CV feedback through the chat
// completion client. It owns prompt construction only; no retry logic.
type AssistService interface {
	GeneratePost(ctx context.Context, params *transfer.GenerateParams) (string, error)
	AnalyzeCV(ctx context.Context, cvText, language string) (*transfer.CVAnalysis, error)
}

type assistService struct {
	client *llm.Client
}

func NewAssistService(client *llm.Client) AssistService {
	return &assistService{client: client}
}

var sectionNumberRe = regexp.MustCompile(`\d+\.`)

func (s *assistService) GeneratePost(ctx context.Context, params *transfer.GenerateParams) (string, error) {
	if params == nil {
		return "", errors.New("generation parameters are nil")
	}

	language := params.Language
	if language == "" {
		language = "en"
	}

	var systemPrompt, userPrompt string
	if language == "ar" {
		systemPrompt = "أنت مساعد محترف لإنشاء منشورات LinkedIn. أنشئ منشورات احترافية وجذابة باللغة العربية."
		userPrompt = buildPrompt("أنشئ منشور LinkedIn احترافي:", [][2]string{
			{"الموضوع", params.Topic},
			{"النبرة", params.Tone},
			{"الجمهور المستهدف", params.TargetRole},
			{"المجال", params.Industry},
			{"خلفية المستخدم", params.UserHeadline},
		}, "أنشئ منشوراً احترافياً وجذاباً (150-300 كلمة).")
	} else {
		systemPrompt = "You are a professional LinkedIn post assistant. Create professional and engaging LinkedIn posts in English."
		userPrompt = buildPrompt("Create a professional LinkedIn post:", [][2]string{
			{"Topic", params.Topic},
			{"Tone", params.Tone},
			{"Target audience", params.TargetRole},
			{"Industry", params.Industry},
			{"User background", params.UserHeadline},
		}, "Create a professional and engaging post (150-300 words).")
	}

	content, err := s.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to generate post: %w", err)
	}

	return strings.TrimSpace(content), nil
}

func (s *assistService) AnalyzeCV(ctx context.Context, cvText, language string) (*transfer.CVAnalysis, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, errors.New("cv text is empty")
	}

	var systemPrompt, userPrompt string
	if language == "ar" {
		systemPrompt = "أنت خبير في تحليل السير الذاتية. قدم تحليلاً شاملاً واقتراحات تحسين باللغة العربية والإنجليزية."
		userPrompt = fmt.Sprintf(`حلل السيرة الذاتية التالية وقدم:
1. ملاحظات عامة عن الهيكل والمحتوى (بالعربية والإنجليزية)
2. ملخص محسّن (بالعربية والإنجليزية)
3. نقاط محسّنة لدورين رئيسيين (بالعربية والإنجليزية)

السيرة الذاتية:
%s`, cvText)
	} else {
		systemPrompt = "You are a CV analysis expert. Provide comprehensive analysis and improvement suggestions in both Arabic and English."
		userPrompt = fmt.Sprintf(`Analyze the following CV and provide:
1. General feedback on structure and content (in Arabic and English)
2. Improved summary (in Arabic and English)
3. Improved bullet points for 1-2 key roles (in Arabic and English)

CV:
%s`, cvText)
	}

	content, err := s.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.5)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze cv: %w", err)
	}

	return parseCVAnalysis(content), nil
}

// parseCVAnalysis splits the model output on its numbered sections. When
// the output does not follow the expected layout the whole text lands in
// GeneralFeedback.
func parseCVAnalysis(content string) *transfer.CVAnalysis {
	var sections []string
	for _, part := range sectionNumberRe.Split(content, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sections = append(sections, trimmed)
		}
	}

	analysis := &transfer.CVAnalysis{GeneralFeedback: content}
	if len(sections) > 0 {
		analysis.GeneralFeedback = sections[0]
	}
	if len(sections) > 1 {
		analysis.ImprovedSummary = sections[1]
	}
	if len(sections) > 2 {
		analysis.ImprovedBullets = sections[2]
	}
	return analysis
}

func buildPrompt(header string, fields [][2]string, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, field := range fields {
		if field[1] != "" {
			b.WriteString(fmt.Sprintf("%s: %s\n", field[0], field[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

package resumeparser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const (
	visionModel    = "gpt-4o"
	maxParseTokens = 4000
)

// ResumeParser extracts profile fields from CV page images using
// OpenAI Vision. CVs on the portal are mostly Spanish-language Chilean
// documents, so the extraction prompt asks for the fields a candidate
// profile carries (titular, presentación, pretensión de renta).
type ResumeParser struct {
	client *openai.Client
}

// NewResumeParser creates a new resume parser
func NewResumeParser(apiKey string) *ResumeParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &ResumeParser{
		client: &client,
	}
}

// ResumeData carries the extracted CV fields a profile can be
// prefilled from
type ResumeData struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	// Headline is the candidate's trade or current role ("titular"),
	// e.g. "Maestro Gasfiter" or "Analista Contable"
	Headline string `json:"headline"`
	// Summary is the presentation paragraph ("presentación")
	Summary string `json:"summary"`
	// DesiredSalary is the monthly expectation in Chilean pesos
	// ("pretensión de renta"); 0 when the CV does not state one
	DesiredSalary int64        `json:"desired_salary"`
	Skills        []string     `json:"skills,omitempty"`
	Experience    []Experience `json:"experience,omitempty"`
	Education     []Education  `json:"education,omitempty"`
	Languages     []string     `json:"languages,omitempty"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Experience struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"` // YYYY-MM
	EndDate   string `json:"end_date"`   // YYYY-MM or "Actualidad"
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
}

const extractionSystemPrompt = `Eres un extractor de currículums chilenos. ` +
	`Lee todas las páginas entregadas y responde SOLO con JSON válido.`

const extractionUserPrompt = `Extrae la información de este currículum en la siguiente estructura JSON:

{
  "personal_info": {
    "name": string,
    "email": string,
    "phone": string (formato +569XXXXXXXX si es posible),
    "location": string (comuna o región),
    "linkedin": string (opcional)
  },
  "headline": string (oficio o cargo actual, ej: "Maestro Gasfiter", "Analista Contable"),
  "summary": string (presentación profesional, máximo 200 palabras, en español),
  "desired_salary": number (pretensión de renta mensual en pesos chilenos; 0 si no aparece),
  "skills": string[],
  "experience": [{
    "company": string,
    "title": string,
    "start_date": string (YYYY-MM),
    "end_date": string (YYYY-MM o "Actualidad")
  }],
  "education": [{
    "institution": string,
    "degree": string
  }],
  "languages": string[]
}

IMPORTANTE:
- Combina la información de todas las páginas
- Si un dato no aparece, usa cadena vacía o 0
- Experiencia en orden cronológico, lo más reciente primero
- Responde SOLO el JSON, sin texto adicional`

// ParseResumeFromMultiplePages extracts profile fields from the
// rendered pages of a CV. One page or many, the pages travel in a
// single vision request so the model sees the whole document.
func (p *ResumeParser) ParseResumeFromMultiplePages(ctx context.Context, pages [][]byte) (*ResumeData, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages provided")
	}

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: extractionUserPrompt,
			},
		},
	}

	for _, pageData := range pages {
		base64Image := base64.StdEncoding.EncodeToString(pageData)
		dataURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64Image)

		contentParts = append(contentParts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "high", // High detail for better OCR
				},
			},
		})
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(extractionSystemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: contentParts,
				},
			},
		},
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    visionModel,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(maxParseTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai vision api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var resumeData ResumeData
	if err := json.Unmarshal([]byte(content), &resumeData); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	return &resumeData, nil
}

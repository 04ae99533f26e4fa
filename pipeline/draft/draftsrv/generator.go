package draftsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/autocareer/autocareer/internal/ai"
	"github.com/autocareer/autocareer/internal/ai/llm"
	"github.com/autocareer/autocareer/internal/ai/retrieval"
	"github.com/autocareer/autocareer/internal/scrape"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

const letterSystemPrompt = "You are a professional career writer. Write a tailored cover letter " +
	"of 250-350 words. Use a confident, specific tone. Do not invent experience " +
	"the candidate does not have. Output only the letter body."

// Generator produces cover letter text. The LLM path is grounded on
// retrieved company context; the template path guarantees a usable
// letter when the LLM is unavailable.
type Generator struct {
	completer llm.Completer
	retriever *retrieval.Retriever
	scraper   *scrape.CompanyScraper
}

// NewGenerator creates a letter generator
func NewGenerator(completer llm.Completer, retriever *retrieval.Retriever, scraper *scrape.CompanyScraper) *Generator {
	return &Generator{
		completer: completer,
		retriever: retriever,
		scraper:   scraper,
	}
}

// GeneratedLetter is the output of one generation attempt
type GeneratedLetter struct {
	Content string
	Method  kernel.GenerationMethod
}

// Generate writes a cover letter for the profile and posting. It never
// fails: every degraded path ends at the deterministic template.
func (g *Generator) Generate(ctx context.Context, p *profile.Profile, posting *job.Posting, matchedSkills []string) GeneratedLetter {
	chunks := g.companyContext(ctx, posting)

	outcome := g.completer.Complete(ctx, llm.CompletionRequest{
		System:      letterSystemPrompt,
		Prompt:      buildLetterPrompt(p, posting, chunks),
		Model:       openai.ChatModelGPT4o,
		Temperature: 0.8,
		MaxTokens:   700,
	})

	if outcome.IsOK() && strings.TrimSpace(outcome.Value) != "" {
		return GeneratedLetter{
			Content: strings.TrimSpace(outcome.Value),
			Method:  kernel.GenerationMethodLLM,
		}
	}

	if outcome.Status == ai.OutcomeFatal {
		logx.Warnf("Letter generation aborted, using template: %v", outcome.Err)
	} else {
		logx.Infof("Letter generation degraded to template: %s", outcome.Reason)
	}

	return GeneratedLetter{
		Content: templateLetter(p, posting, matchedSkills),
		Method:  kernel.GenerationMethodTemplate,
	}
}

// companyContext scrapes the posting's site and selects the passages most
// relevant to the role. Failures collapse to an empty context.
func (g *Generator) companyContext(ctx context.Context, posting *job.Posting) []retrieval.Chunk {
	if g.scraper == nil || g.retriever == nil || !posting.URL.IsNavigable() {
		return nil
	}

	origin := scrape.OriginOf(posting.URL.String())
	if origin == "" {
		return nil
	}

	corpus := g.scraper.FetchCorpus(ctx, origin)
	if corpus == "" {
		return nil
	}

	query := posting.Title + " at " + posting.Company
	return g.retriever.Retrieve(ctx, corpus, query, 0)
}

func buildLetterPrompt(p *profile.Profile, posting *job.Posting, chunks []retrieval.Chunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", p.FullName)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	if p.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", p.Summary)
	}
	if p.Experience != "" {
		fmt.Fprintf(&b, "Experience:\n%s\n", p.Experience)
	}

	fmt.Fprintf(&b, "\nPosition: %s at %s\n", posting.Title, posting.Company)
	fmt.Fprintf(&b, "Job description:\n%s\n", posting.Description)

	if len(chunks) > 0 {
		b.WriteString("\nAbout the company (from their website):\n")
		for _, chunk := range chunks {
			fmt.Fprintf(&b, "- %s\n", chunk.Text)
		}
	}

	b.WriteString("\nWrite the cover letter now.")
	return b.String()
}

// templateLetter fills a fixed letter skeleton from structured profile
// data. It lands in the 200-400 word band expected of a usable letter.
func templateLetter(p *profile.Profile, posting *job.Posting, matchedSkills []string) string {
	skills := matchedSkills
	if len(skills) == 0 {
		skills = p.Skills
	}
	if len(skills) > 5 {
		skills = skills[:5]
	}
	skillLine := "my professional experience"
	if len(skills) > 0 {
		skillLine = "my experience with " + joinNatural(skills)
	}

	summary := p.Summary
	if summary == "" {
		summary = "I have built my career on delivering reliable, well-crafted work and learning quickly in new domains."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s Hiring Team,\n\n", posting.Company)
	fmt.Fprintf(&b, "I am writing to apply for the %s position at %s. ", posting.Title, posting.Company)
	fmt.Fprintf(&b, "After reading the role description, I believe %s makes me a strong match for what your team needs.\n\n", skillLine)
	fmt.Fprintf(&b, "%s ", summary)
	b.WriteString("In previous roles I have taken ownership of my work end to end, collaborated closely with teammates across disciplines, and consistently delivered against deadlines. ")
	b.WriteString("I approach new problems by understanding the underlying need first, then iterating toward a solution that holds up in production.\n\n")
	b.WriteString("Beyond the day-to-day work, I care about the quality of what reaches real users. ")
	b.WriteString("I document the decisions that are not obvious in hindsight and leave the systems I touch easier to operate than I found them. ")
	b.WriteString("I am equally comfortable driving a project independently and contributing to a shared roadmap, and I have found that steady communication is what keeps both modes productive.\n\n")
	fmt.Fprintf(&b, "What draws me to %s is the opportunity to apply these strengths to the challenges described in the posting. ", posting.Company)
	b.WriteString("I would welcome the chance to discuss how my background maps onto your team's goals in more detail, ")
	b.WriteString("and I am happy to walk through recent projects that show how I work.\n\n")
	b.WriteString("Thank you for your time and consideration.\n\n")
	fmt.Fprintf(&b, "Sincerely,\n%s", p.FullName)
	return b.String()
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

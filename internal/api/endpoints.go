package api

import (
	"context"
	"net/http"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

// Draft generation endpoints. The worker has published the generation route
// under two names; the primary is tried first and a 404 falls through to the
// alternate with the same payload.
const (
	draftEndpoint    = "/api/draft"
	fallbackEndpoint = "/api/generate"
)

// SendMagicLink requests a login email with the given redirect target.
func (c *Client) SendMagicLink(ctx context.Context, email, redirect string) error {
	_, err := c.Request(ctx, "/auth/magic-link", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "redirect": redirect},
	})
	return err
}

// Profile fetches the account profile. Missing fields are filled with the
// defaults a brand-new account would have.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	body, err := c.Request(ctx, "/api/profile", RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	profile, err := decode[models.Profile](body)
	if err != nil {
		return nil, err
	}
	profile.Normalize()
	return &profile, nil
}

// UpdateProfile patches profile fields.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) error {
	_, err := c.Request(ctx, "/api/profile", RequestOptions{
		Method: http.MethodPatch,
		Auth:   true,
		Body:   patch,
	})
	return err
}

// Articles lists the account's articles. Anything that is not a JSON array
// is coerced to an empty list so callers can always range over the result.
func (c *Client) Articles(ctx context.Context) ([]models.Article, error) {
	body, err := c.Request(ctx, "/api/articles", RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	list, err := decode[[]models.Article](body)
	if err != nil {
		return []models.Article{}, nil
	}
	if list == nil {
		list = []models.Article{}
	}
	return list, nil
}

// Article fetches a single article by id.
func (c *Client) Article(ctx context.Context, id string) (*models.Article, error) {
	body, err := c.Request(ctx, "/api/articles/"+id, RequestOptions{Auth: true})
	if err != nil {
		return nil, err
	}
	article, err := decode[models.Article](body)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle stores a new article server-side.
func (c *Client) CreateArticle(ctx context.Context, article models.ArticleInput) (*models.Article, error) {
	body, err := c.Request(ctx, "/api/articles", RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body:   article,
	})
	if err != nil {
		return nil, err
	}
	created, err := decode[models.Article](body)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateArticle patches an article by id.
func (c *Client) UpdateArticle(ctx context.Context, id string, patch map[string]any) (*models.Article, error) {
	body, err := c.Request(ctx, "/api/articles/"+id, RequestOptions{
		Method: http.MethodPatch,
		Auth:   true,
		Body:   patch,
	})
	if err != nil {
		return nil, err
	}
	updated, err := decode[models.Article](body)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteArticle removes an article by id.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	_, err := c.Request(ctx, "/api/articles/"+id, RequestOptions{
		Method: http.MethodDelete,
		Auth:   true,
	})
	return err
}

// GenerateDraft runs a generation against the primary draft endpoint with an
// extended timeout. A 404 from the primary means the worker published the
// alternate route instead, so the same payload is retried there once. Every
// other failure, including a 404 from the fallback, propagates unchanged.
func (c *Client) GenerateDraft(ctx context.Context, req models.DraftRequest) (*models.ArticleInput, error) {
	opts := RequestOptions{
		Method:  http.MethodPost,
		Auth:    true,
		Body:    req,
		Timeout: c.generateTimeout,
	}

	body, err := c.Request(ctx, draftEndpoint, opts)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		body, err = c.Request(ctx, fallbackEndpoint, opts)
		if err != nil {
			return nil, err
		}
	}

	draft, err := decode[models.ArticleInput](body)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// Templates lists the available generation templates, coerced to an array.
func (c *Client) Templates(ctx context.Context) ([]models.Template, error) {
	body, err := c.Request(ctx, "/api/templates", RequestOptions{})
	if err != nil {
		return nil, err
	}
	list, err := decode[[]models.Template](body)
	if err != nil {
		return []models.Template{}, nil
	}
	if list == nil {
		list = []models.Template{}
	}
	return list, nil
}

// GenerateFromTemplate runs a template-based generation.
func (c *Client) GenerateFromTemplate(ctx context.Context, payload map[string]any) (*models.ArticleInput, error) {
	body, err := c.Request(ctx, "/api/templates/generate", RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	draft, err := decode[models.ArticleInput](body)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// tool posts a payload to one of the analysis tool endpoints.
func (c *Client) tool(ctx context.Context, name string, payload any) (map[string]any, error) {
	body, err := c.Request(ctx, "/api/tools/"+name, RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	return decode[map[string]any](body)
}

// AnalyzeReadability scores a text for readability.
func (c *Client) AnalyzeReadability(ctx context.Context, text string) (map[string]any, error) {
	return c.tool(ctx, "readability", map[string]string{"text": text})
}

// AnalyzeHeadline scores a headline.
func (c *Client) AnalyzeHeadline(ctx context.Context, headline string) (map[string]any, error) {
	return c.tool(ctx, "headline", map[string]string{"headline": headline})
}

// SerpPreview renders a search-result preview for the given page fields.
func (c *Client) SerpPreview(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.tool(ctx, "serp", payload)
}

// CheckPlagiarism checks a text against existing web content.
func (c *Client) CheckPlagiarism(ctx context.Context, text string) (map[string]any, error) {
	return c.tool(ctx, "plagiarism", map[string]string{"text": text})
}

// AnalyzeCompetitors analyzes ranking competitors for a keyword.
func (c *Client) AnalyzeCompetitors(ctx context.Context, keyword, region string) (map[string]any, error) {
	return c.tool(ctx, "competitors", map[string]string{"keyword": keyword, "region": region})
}

// ExtractKeywords extracts keyword suggestions from a topic and text.
func (c *Client) ExtractKeywords(ctx context.Context, topic, text, region string) (map[string]any, error) {
	return c.tool(ctx, "keywords", map[string]string{"topic": topic, "text": text, "region": region})
}

// ContentBrief generates a content brief for a keyword.
func (c *Client) ContentBrief(ctx context.Context, keyword, region string) (map[string]any, error) {
	return c.tool(ctx, "brief", map[string]string{"keyword": keyword, "region": region})
}

// MetaDescription generates a meta description from article content.
func (c *Client) MetaDescription(ctx context.Context, content string) (map[string]any, error) {
	return c.tool(ctx, "meta", map[string]string{"content": content})
}

// EditSection rewrites a section per the given instruction.
func (c *Client) EditSection(ctx context.Context, instruction, section string) (map[string]any, error) {
	return c.tool(ctx, "section", map[string]string{"instruction": instruction, "section": section})
}

// ExpandArticle expands an article with additional sections.
func (c *Client) ExpandArticle(ctx context.Context, payload map[string]any) (map[string]any, error) {
	return c.tool(ctx, "expand", payload)
}

// AIAssist sends a freeform prompt to the writing assistant.
func (c *Client) AIAssist(ctx context.Context, prompt, docContext, keyword, region string) (map[string]any, error) {
	body, err := c.Request(ctx, "/api/ai-assistant", RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body: map[string]string{
			"prompt":  prompt,
			"context": docContext,
			"keyword": keyword,
			"region":  region,
		},
	})
	if err != nil {
		return nil, err
	}
	return decode[map[string]any](body)
}

// checkoutResponse carries the redirect URL for Stripe flows.
type checkoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession starts a Stripe checkout and returns the redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, successURL, cancelURL string) (string, error) {
	body, err := c.Request(ctx, "/api/stripe/create-checkout", RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body:   map[string]string{"successUrl": successURL, "cancelUrl": cancelURL},
	})
	if err != nil {
		return "", err
	}
	resp, err := decode[checkoutResponse](body)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// CreatePortalSession opens a Stripe billing portal and returns the URL.
func (c *Client) CreatePortalSession(ctx context.Context, returnURL string) (string, error) {
	body, err := c.Request(ctx, "/api/stripe/portal", RequestOptions{
		Method: http.MethodPost,
		Auth:   true,
		Body:   map[string]string{"returnUrl": returnURL},
	})
	if err != nil {
		return "", err
	}
	resp, err := decode[checkoutResponse](body)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"text/template"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"
)

// WidgetService renders the embeddable script for a program's offer. The
// output is always valid script text: error paths produce a script whose
// only effect is a console diagnostic, so embedding pages never break.
type WidgetService interface {
	RenderScript(ctx context.Context, rawLink string) *WidgetScript
}

type WidgetScript struct {
	Body       string
	StatusCode int
}

const widgetCacheKeyPrefix = "widget:script:"

var widgetTemplate = template.Must(template.New("widget").Parse(`(function () {
  var container = document.createElement("div");
  container.style.backgroundColor = {{.BackgroundColor}};
  container.style.color = {{.TextColor}};
  container.style.padding = "16px";
  container.style.borderRadius = "8px";
  container.style.fontFamily = "sans-serif";
  container.style.maxWidth = "320px";

  var title = document.createElement("div");
  title.style.fontWeight = "bold";
  title.style.marginBottom = "8px";
  title.textContent = {{.Name}};

  var offer = document.createElement("div");
  offer.style.marginBottom = "12px";
  offer.textContent = "Earn " + {{.Rate}} + "% commission on every referral.";

  var button = document.createElement("a");
  button.href = {{.SignupURL}};
  button.textContent = "Join the program";
  button.style.display = "inline-block";
  button.style.padding = "8px 16px";
  button.style.borderRadius = "6px";
  button.style.backgroundColor = {{.ButtonColor}};
  button.style.color = "#ffffff";
  button.style.textDecoration = "none";

  container.appendChild(title);
  container.appendChild(offer);
  container.appendChild(button);

  var anchor = document.currentScript;
  if (anchor && anchor.parentNode) {
    anchor.parentNode.insertBefore(container, anchor);
  } else {
    document.body.appendChild(container);
  }
})();
`))

var widgetErrorTemplate = template.Must(template.New("widget_error").Parse(`(function () {
  console.error({{.Message}});
})();
`))

type widgetTemplateData struct {
	Name            string
	Rate            string
	SignupURL       string
	BackgroundColor string
	TextColor       string
	ButtonColor     string
}

type widgetService struct {
	linkRepo    interfaces.LinkRepository
	programRepo interfaces.ProgramRepository
	cache       CacheService
	signupBase  string
	logger      *logger.Logger
}

func NewWidgetService(
	linkRepo interfaces.LinkRepository,
	programRepo interfaces.ProgramRepository,
	cache CacheService,
	signupBase string,
	logger *logger.Logger,
) WidgetService {
	return &widgetService{
		linkRepo:    linkRepo,
		programRepo: programRepo,
		cache:       cache,
		signupBase:  signupBase,
		logger:      logger,
	}
}

func (s *widgetService) RenderScript(ctx context.Context, rawLink string) *WidgetScript {
	token := utils.ExtractLinkToken(rawLink)
	if token == "" {
		return s.errorScript(http.StatusBadRequest, "missing link parameter")
	}

	cacheKey := widgetCacheKeyPrefix + token
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached != "" {
			return &WidgetScript{Body: cached, StatusCode: http.StatusOK}
		}
	}

	link, err := s.linkRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return s.errorScript(http.StatusNotFound, "unknown affiliate link")
		}
		s.logger.WithError(err).Error("Widget link lookup failed")
		return s.errorScript(http.StatusInternalServerError, "widget temporarily unavailable")
	}

	program, err := s.programRepo.GetByID(ctx, link.ProgramID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return s.errorScript(http.StatusNotFound, "unknown affiliate program")
		}
		s.logger.WithError(err).Error("Widget program lookup failed")
		return s.errorScript(http.StatusInternalServerError, "widget temporarily unavailable")
	}

	body, err := s.render(program, token)
	if err != nil {
		s.logger.WithError(err).Error("Widget render failed")
		return s.errorScript(http.StatusInternalServerError, "widget temporarily unavailable")
	}

	// The cache is a pure optimization; a miss re-renders the same bytes
	// from the same data.
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, body, utils.WidgetCacheTTL); err != nil {
			s.logger.WithError(err).Debug("Widget cache write failed")
		}
	}

	return &WidgetScript{Body: body, StatusCode: http.StatusOK}
}

func (s *widgetService) render(program *models.AffiliateProgram, token string) (string, error) {
	style := program.WidgetStyle
	style.ApplyDefaults()

	signupURL := strings.TrimRight(s.signupBase, "/") + "/signup?ref=" + url.QueryEscape(token)

	data := widgetTemplateData{
		Name:            jsString(program.Name),
		Rate:            jsString(strconv.FormatFloat(program.CommissionRate, 'f', -1, 64)),
		SignupURL:       jsString(signupURL),
		BackgroundColor: jsString(safeColor(style.BackgroundColor, models.DefaultWidgetBackgroundColor)),
		TextColor:       jsString(safeColor(style.TextColor, models.DefaultWidgetTextColor)),
		ButtonColor:     jsString(safeColor(style.ButtonColor, models.DefaultWidgetButtonColor)),
	}

	var b strings.Builder
	if err := widgetTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *widgetService) errorScript(status int, message string) *WidgetScript {
	var b strings.Builder
	data := struct{ Message string }{
		Message: jsString("AffiliateNest widget: " + message),
	}
	if err := widgetErrorTemplate.Execute(&b, data); err != nil {
		// Template has a single string field; execution cannot fail with
		// the data above, but keep the endpoint script-safe regardless.
		return &WidgetScript{Body: "(function () {})();\n", StatusCode: status}
	}
	return &WidgetScript{Body: b.String(), StatusCode: status}
}

// jsString renders s as a JavaScript string literal. json.Marshal escapes
// quotes, backslashes and <, >, & — which also neutralizes "</script>"
// inside inline contexts.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func safeColor(color, fallback string) string {
	if utils.IsValidHexColor(color) {
		return color
	}
	return fallback
}

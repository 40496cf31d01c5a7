package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/lead-intake-ai/internal/observability/metrics"
	"github.com/wolfman30/lead-intake-ai/pkg/logging"
)

var intakeTracer = otel.Tracer("leadintake.internal.intake")

// TaskTypeLeadReply is the default task: extract lead fields and draft a
// reply. Any other task_type routes to the free-text path.
const TaskTypeLeadReply = "lead_reply"

// ErrEmptyBody rejects requests whose body is absent or blank after
// trimming, before any model cost is incurred.
var ErrEmptyBody = errors.New("intake: body is required")

// inputPreviewLimit bounds the input echo on free-text task results.
const inputPreviewLimit = 140

// Pipeline composes the matcher, extractor, merger, and renderer into the
// end-to-end request flow.
type Pipeline struct {
	matcher       *Matcher
	extractor     *Extractor
	renderer      *Renderer
	defaultSource string
	logger        *logging.Logger
	metrics       *metrics.IntakeMetrics
}

func NewPipeline(matcher *Matcher, extractor *Extractor, renderer *Renderer, defaultSource string, logger *logging.Logger, m *metrics.IntakeMetrics) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		matcher:       matcher,
		extractor:     extractor,
		renderer:      renderer,
		defaultSource: defaultSource,
		logger:        logger,
		metrics:       m,
	}
}

// Process runs the lead flow: validate, template check, extract, merge,
// render. A completion failure never fails the request; it comes back as a
// complete record with Error set.
func (p *Pipeline) Process(ctx context.Context, req *IntakeRequest) (*Result, error) {
	body := strings.TrimSpace(req.EmailBody())
	if body == "" {
		return nil, ErrEmptyBody
	}

	ctx, span := intakeTracer.Start(ctx, "intake.process")
	defer span.End()
	start := time.Now()

	if res, templateID, ok := p.matcher.Match(req); ok {
		span.SetAttributes(attribute.String("intake.template", templateID))
		p.metrics.ObserveTemplateHit(templateID)
		p.metrics.ObserveRequest(TaskTypeLeadReply, "template")
		p.metrics.ObserveLatency(TaskTypeLeadReply, time.Since(start).Seconds())
		p.logger.Info("lead short-circuited by template",
			"template", templateID,
			"source", res.Source,
		)
		return res, nil
	}

	rec := p.extractor.Extract(ctx, req.EmailBody())
	if rec.Error != "" {
		span.SetAttributes(attribute.Bool("intake.gateway_failed", true))
		p.metrics.ObserveGatewayFailure()
	}

	res := Merge(rec, req, p.defaultSource)
	res.ReplyHTML = p.renderer.Render(res.Reply)

	status := "ok"
	if res.Error != "" {
		status = "degraded"
	}
	p.metrics.ObserveRequest(TaskTypeLeadReply, status)
	p.metrics.ObserveLatency(TaskTypeLeadReply, time.Since(start).Seconds())
	p.logger.Info("lead processed",
		"lead_type", res.LeadType,
		"priority", res.Priority,
		"source", res.Source,
		"degraded", res.Error != "",
		"summary_preview", truncatePreview(res.Summary),
	)
	return &res, nil
}

// FreeText handles non-lead task types with a plain completion. No schema
// repair and no field merging happen on this path; a gateway failure is
// absorbed into the meta map.
func (p *Pipeline) FreeText(ctx context.Context, req *IntakeRequest) (*TaskResult, error) {
	body := strings.TrimSpace(req.EmailBody())
	if body == "" {
		return nil, ErrEmptyBody
	}

	ctx, span := intakeTracer.Start(ctx, "intake.freetext")
	defer span.End()
	span.SetAttributes(attribute.String("intake.task_type", req.TaskType))
	start := time.Now()

	result := &TaskResult{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		TaskType:     req.TaskType,
		InputPreview: truncatePreview(body),
		Meta:         map[string]string{},
	}

	text, err := p.extractor.Respond(ctx, body)
	if err != nil {
		p.metrics.ObserveGatewayFailure()
		p.metrics.ObserveRequest(req.TaskType, "degraded")
		result.Meta["error"] = err.Error()
		result.Result = gatewayFailureReply
	} else {
		p.metrics.ObserveRequest(req.TaskType, "ok")
		result.Result = NormalizeText(text)
	}
	p.metrics.ObserveLatency(req.TaskType, time.Since(start).Seconds())

	p.logger.Info("free-text task processed",
		"task_type", req.TaskType,
		"degraded", err != nil,
	)
	return result, nil
}

func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= inputPreviewLimit {
		return s
	}
	return string(runes[:inputPreviewLimit]) + "..."
}

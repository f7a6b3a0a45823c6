// Package assistant turns a user message into a reply by classifying it and
// delegating to the catalog, order, cart and session collaborators.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/common/metrics"
	"kirana-assistant/internal/common/observability"
	"kirana-assistant/internal/models"
	"kirana-assistant/internal/nlp"
	"kirana-assistant/internal/services/catalog"
	"kirana-assistant/internal/services/orders"
)

// Collaborator failure sentences. Stable on purpose: a failed lookup must
// never leak its underlying error into the reply.
const (
	SearchFailedReply = "There was an error searching the catalog. Please try again."
	CartFailedReply   = "There was an error updating your cart. Please try again."

	NoProductsReply = "I couldn't find any products matching that. Try something like \"Show me breakfast items under 200\"."

	FallbackReply = "I understand you're looking for help with shopping. You can ask me about orders, search for products, or get general assistance. What would you like to do?"
)

// Catalog is the product lookup surface the handler needs.
type Catalog interface {
	Search(ctx context.Context, query nlp.SearchQuery) ([]models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
}

// Orders resolves order ids to orders.
type Orders interface {
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
}

// Cart adds products to a user's cart.
type Cart interface {
	Add(ctx context.Context, userID, productID string, quantity int) error
}

// Sessions records conversation history. Failures are logged, never surfaced.
type Sessions interface {
	Append(ctx context.Context, sessionID, text string, isUser bool) (*models.ChatMessage, error)
}

type Handler struct {
	config   *Config
	catalog  Catalog
	orders   Orders
	cart     Cart
	sessions Sessions
	obs      *observability.Observability
	logger   logger.Logger
}

func NewHandler(cfg *Config, cat Catalog, ord Orders, crt Cart, sess Sessions, log logger.Logger) *Handler {
	return &Handler{
		config:   cfg,
		catalog:  cat,
		orders:   ord,
		cart:     crt,
		sessions: sess,
		logger:   log.WithFields(map[string]interface{}{"component": "assistant"}),
	}
}

// WithObservability attaches the otel instruments.
func (h *Handler) WithObservability(obs *observability.Observability) *Handler {
	h.obs = obs
	return h
}

// Process interprets one message and builds the reply. It always returns an
// Output: collaborator failures become their stable failure sentences.
func (h *Handler) Process(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	start := time.Now()

	if h.config.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.ReplyTimeout)
		defer cancel()
	}

	h.recordUserMessage(ctx, input)

	var cmd nlp.VoiceCommand
	if input.Voice {
		cmd = nlp.VoiceClassifier{}.Classify(input.Message)
	} else {
		cmd = nlp.ChatClassifier{}.Classify(input.Message)
	}

	reply := h.reply(ctx, input, cmd)

	h.recordReply(ctx, input, reply)

	intent := string(cmd.Type)
	metrics.MessagesProcessed.WithLabelValues(intent).Inc()
	metrics.InterpretDuration.WithLabelValues(intent).Observe(time.Since(start).Seconds())
	if h.obs != nil {
		h.obs.RecordMessageProcessed(ctx, intent)
		h.obs.RecordMessageDuration(ctx, time.Since(start), intent)
	}

	return &Output{
		Reply:   reply,
		Intent:  intent,
		Command: cmd,
		Speak:   input.Voice || h.config.SpeakReplies,
	}, nil
}

func (h *Handler) reply(ctx context.Context, input *Input, cmd nlp.VoiceCommand) string {
	switch cmd.Type {
	case nlp.IntentOrderStatus:
		return h.orderStatusReply(ctx, cmd)
	case nlp.IntentGreeting:
		return nlp.GreetingReply
	case nlp.IntentHelp:
		return nlp.HelpReply
	case nlp.IntentAddToCart:
		return h.addToCartReply(ctx, input, cmd)
	case nlp.IntentSearch:
		return h.searchReply(ctx, input, cmd)
	default:
		return FallbackReply
	}
}

func (h *Handler) orderStatusReply(ctx context.Context, cmd nlp.VoiceCommand) string {
	if cmd.OrderID == "" {
		return nlp.OrderIDPromptReply
	}

	order, err := h.orders.GetByID(ctx, cmd.OrderID)
	if errors.Is(err, orders.ErrOrderNotFound) {
		return nlp.OrderNotFoundReply(cmd.OrderID)
	}
	if err != nil {
		h.collaboratorFailed(cmd, "ORDER_LOOKUP_FAILED", err)
		return nlp.OrderLookupFailedReply
	}

	return nlp.OrderStatusReply(string(order.Status), order.TotalAmount, order.CreatedAt)
}

func (h *Handler) addToCartReply(ctx context.Context, input *Input, cmd nlp.VoiceCommand) string {
	name := strings.TrimSpace(cmd.Product)
	if name == "" {
		return NoProductsReply
	}

	product, err := h.catalog.FindByName(ctx, name)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return fmt.Sprintf("I couldn't find %q in the catalog. Try saying something like \"Order 2 packs of dosa batter\".", name)
	}
	if err != nil {
		h.collaboratorFailed(cmd, "PRODUCT_SEARCH_FAILED", err)
		return SearchFailedReply
	}

	quantity := 1
	if cmd.Quantity != nil {
		quantity = *cmd.Quantity
	}

	if err := h.cart.Add(ctx, input.UserID, product.ID, quantity); err != nil {
		h.collaboratorFailed(cmd, "CART_UPDATE_FAILED", err)
		return CartFailedReply
	}

	total := product.Price * float64(quantity)
	return fmt.Sprintf("🛒 Added %d x %s to your cart. Total: %s", quantity, product.Name, nlp.FormatAmount(total))
}

func (h *Handler) searchReply(ctx context.Context, input *Input, cmd nlp.VoiceCommand) string {
	if strings.TrimSpace(input.Message) == "" {
		return FallbackReply
	}

	var query nlp.SearchQuery
	if input.Voice {
		query = nlp.BuildSearchQuery(cmd)
	} else {
		query = nlp.ParseTextSearch(input.Message)
	}

	products, err := h.catalog.Search(ctx, query)
	if err != nil {
		h.collaboratorFailed(cmd, "PRODUCT_SEARCH_FAILED", err)
		return SearchFailedReply
	}
	if len(products) == 0 {
		return NoProductsReply
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d products for you:\n", len(products))
	shown := len(products)
	if shown > h.config.MaxSearchHits {
		shown = h.config.MaxSearchHits
	}
	for _, p := range products[:shown] {
		fmt.Fprintf(&b, "\n• %s (%s)", p.Name, nlp.FormatAmount(p.Price))
	}
	if rest := len(products) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n...and %d more", rest)
	}
	return b.String()
}

func (h *Handler) recordUserMessage(ctx context.Context, input *Input) {
	if !h.config.HistoryEnabled || h.sessions == nil || input.SessionID == "" {
		return
	}
	if _, err := h.sessions.Append(ctx, input.SessionID, input.Message, true); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("SESSION_STORE_FAILED").Inc()
		h.logger.Warn("failed to record user message", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err.Error(),
		})
	}
}

func (h *Handler) recordReply(ctx context.Context, input *Input, reply string) {
	if !h.config.HistoryEnabled || h.sessions == nil || input.SessionID == "" {
		return
	}
	if _, err := h.sessions.Append(ctx, input.SessionID, reply, false); err != nil {
		metrics.CollaboratorFailures.WithLabelValues("SESSION_STORE_FAILED").Inc()
		h.logger.Warn("failed to record reply", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err.Error(),
		})
	}
}

func (h *Handler) collaboratorFailed(cmd nlp.VoiceCommand, code string, err error) {
	metrics.CollaboratorFailures.WithLabelValues(code).Inc()
	h.logger.Error("collaborator call failed", map[string]interface{}{
		"intent":    string(cmd.Type),
		"errorCode": code,
		"error":     err.Error(),
	})
}

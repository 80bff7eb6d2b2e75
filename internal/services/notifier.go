package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lojinha-dev/lojinha/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorGreen = 65280 // #00FF00

	Username = "Lojinha Relatórios"
)

// Notifier posts report summaries to the configured Discord and Slack webhooks.
// An empty URL disables that channel.
type Notifier struct {
	DiscordURL string
	SlackURL   string
	client     *http.Client
}

func NewNotifier(discordURL, slackURL string) *Notifier {
	return &Notifier{
		DiscordURL: discordURL,
		SlackURL:   slackURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) NotifyReport(report models.Report) error {
	if n.DiscordURL != "" {
		if err := n.sendDiscordReport(report); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if n.SlackURL != "" {
		if err := n.sendSlackReport(report); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func (n *Notifier) sendDiscordReport(report models.Report) error {
	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "📊 **RELATÓRIO DE VENDAS**",
				Description: fmt.Sprintf("Relatório do período **%s** gerado.", report.Period),
				Color:       ColorGreen,
				Fields: []DiscordWebhookField{
					{Name: "🧾 Pedidos", Value: fmt.Sprintf("%d", report.OrderCount), Inline: true},
					{Name: "📦 Produtos vendidos", Value: fmt.Sprintf("%d", report.UnitsSold), Inline: true},
					{Name: "💰 Total de vendas", Value: "R$ " + report.Revenue.StringFixed(2), Inline: true},
					{Name: "📁 Arquivo", Value: report.Path, Inline: false},
				},
				Footer:    &DiscordFooter{Text: "Origem: " + string(report.Trigger)},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return n.post(n.DiscordURL, payload)
}

func (n *Notifier) sendSlackReport(report models.Report) error {
	payload := SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":bar_chart:",
		Text:      ":bar_chart: *RELATÓRIO DE VENDAS*",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: fmt.Sprintf("Período %s", report.Period),
				Text:  report.Path,
				Fields: []SlackField{
					{Title: "Pedidos", Value: fmt.Sprintf("%d", report.OrderCount), Short: true},
					{Title: "Produtos vendidos", Value: fmt.Sprintf("%d", report.UnitsSold), Short: true},
					{Title: "Total de vendas", Value: "R$ " + report.Revenue.StringFixed(2), Short: true},
				},
				Footer:    "Origem: " + string(report.Trigger),
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return n.post(n.SlackURL, payload)
}

func (n *Notifier) post(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := n.client.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	pkgkafka "github.com/zoobutik/zoobutik.bg/pkg/kafka"
	"github.com/zoobutik/zoobutik.bg/pkg/money"
)

// Mailer turns storefront events into customer emails. Each Handle* method
// satisfies the kafka consumer Handler signature.
type Mailer struct {
	sender Sender
	from   string
	logger *slog.Logger
}

// New creates a mailer that delivers through the given sender.
func New(sender Sender, from string, logger *slog.Logger) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// HandleNewsletterSubscribed sends the welcome email with the discount code.
func (m *Mailer) HandleNewsletterSubscribed(ctx context.Context, evt *pkgkafka.Event) error {
	var data event.NewsletterSubscribedData
	if err := evt.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal newsletter.subscribed payload: %w", err)
	}

	var b strings.Builder
	b.WriteString("Здравейте,\n\n")
	b.WriteString("Благодарим Ви, че се абонирахте за бюлетина на Зообутик!\n\n")
	fmt.Fprintf(&b, "Вашият код за %d%% отстъпка от първата поръчка: %s\n", data.DiscountPercent, data.DiscountCode)
	fmt.Fprintf(&b, "Кодът е валиден до %s.\n\n", data.ExpiresAt.Format("02.01.2006"))
	b.WriteString("Поздрави,\nЕкипът на Зообутик\n")

	return m.sender.Send(ctx, Message{
		To:      data.Email,
		From:    m.from,
		Subject: "Добре дошли в Зообутик! Вашата отстъпка Ви очаква",
		Body:    b.String(),
	})
}

// HandleUserRegistered greets a newly registered customer.
func (m *Mailer) HandleUserRegistered(ctx context.Context, evt *pkgkafka.Event) error {
	var data event.UserRegisteredData
	if err := evt.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal user.registered payload: %w", err)
	}

	name := data.FullName
	if name == "" {
		name = data.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Здравейте, %s,\n\n", name)
	b.WriteString("Вашият профил в Зообутик е създаден успешно.\n")
	b.WriteString("Вече можете да следите поръчките си и да запазвате любими продукти.\n\n")
	b.WriteString("Поздрави,\nЕкипът на Зообутик\n")

	return m.sender.Send(ctx, Message{
		To:      data.Email,
		From:    m.from,
		Subject: "Добре дошли в Зообутик",
		Body:    b.String(),
	})
}

// HandleOrderCreated sends the order confirmation with an itemized summary in
// both currencies.
func (m *Mailer) HandleOrderCreated(ctx context.Context, evt *pkgkafka.Event) error {
	var data event.OrderCreatedData
	if err := evt.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal order.created payload: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Здравейте, %s,\n\n", data.CustomerName)
	fmt.Fprintf(&b, "Получихме Вашата поръчка №%d. Съдържание:\n\n", data.OrderID)
	for _, item := range data.Items {
		fmt.Fprintf(&b, "  %d x %s - %s\n", item.Quantity, item.Name, money.FormatDual(item.Price*int64(item.Quantity)))
	}
	fmt.Fprintf(&b, "\nОбщо: %s\n", money.FormatDual(data.Total))
	fmt.Fprintf(&b, "Начин на плащане: %s\n\n", paymentMethodLabel(data.PaymentMethod))
	b.WriteString("Ще Ви уведомим, когато поръчката бъде изпратена.\n\nПоздрави,\nЕкипът на Зообутик\n")

	return m.sender.Send(ctx, Message{
		To:      data.CustomerEmail,
		From:    m.from,
		Subject: fmt.Sprintf("Поръчка №%d е приета", data.OrderID),
		Body:    b.String(),
	})
}

// HandleOrderStatusChanged notifies the customer when the order moves to a
// status they care about. Internal transitions are skipped.
func (m *Mailer) HandleOrderStatusChanged(ctx context.Context, evt *pkgkafka.Event) error {
	var data event.OrderStatusChangedData
	if err := evt.UnmarshalData(&data); err != nil {
		return fmt.Errorf("unmarshal order.status_changed payload: %w", err)
	}

	subject, body, ok := statusEmail(data.OrderID, data.NewStatus)
	if !ok {
		m.logger.DebugContext(ctx, "no email for status transition",
			slog.Int64("order_id", data.OrderID),
			slog.String("status", string(data.NewStatus)),
		)
		return nil
	}

	return m.sender.Send(ctx, Message{
		To:      data.CustomerEmail,
		From:    m.from,
		Subject: subject,
		Body:    body,
	})
}

func statusEmail(orderID int64, status domain.OrderStatus) (subject, body string, ok bool) {
	switch status {
	case domain.OrderStatusShipped:
		return fmt.Sprintf("Поръчка №%d е изпратена", orderID),
			fmt.Sprintf("Здравейте,\n\nВашата поръчка №%d е предадена на куриер.\n\nПоздрави,\nЕкипът на Зообутик\n", orderID),
			true
	case domain.OrderStatusDelivered:
		return fmt.Sprintf("Поръчка №%d е доставена", orderID),
			fmt.Sprintf("Здравейте,\n\nВашата поръчка №%d е доставена. Благодарим Ви, че пазарувахте при нас!\n\nПоздрави,\nЕкипът на Зообутик\n", orderID),
			true
	case domain.OrderStatusCancelled:
		return fmt.Sprintf("Поръчка №%d е отказана", orderID),
			fmt.Sprintf("Здравейте,\n\nВашата поръчка №%d беше отказана. Ако не сте заявили отказ, свържете се с нас.\n\nПоздрави,\nЕкипът на Зообутик\n", orderID),
			true
	default:
		return "", "", false
	}
}

func paymentMethodLabel(method string) string {
	switch method {
	case "cash_on_delivery":
		return "Наложен платеж"
	case "card_on_delivery":
		return "Карта при доставка"
	case "bank_transfer":
		return "Банков превод"
	default:
		return method
	}
}

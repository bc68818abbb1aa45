package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// ClientChannel - канал, через который события уходят одному конкретному
// подключению (одной вкладке браузера).
type ClientChannel chan []byte

// структура для передачи в канал
type eventWithContext struct {
	ctx   context.Context
	event domain.FavoritesEvent
}

// SSENotifier рассылает события изменения избранного подписанным вкладкам.
// Представления подписываются на поток вместо опроса списка избранного.
type SSENotifier struct {
	// clients хранит активные подключения. Ключ - email пользователя,
	// значение - срез каналов (пользователь может открыть несколько вкладок)
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	// eventChan - внутренний канал, в который Use Cases бросают события
	eventChan chan eventWithContext

	logger port.LoggerPort
}

// NewSSENotifier создает и запускает новый нотификатор.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	notifier := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	// Горутина-диспетчер слушает события и рассылает их подключениям
	go notifier.dispatcher()

	return notifier
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for eventPackage := range n.eventChan {
		event := eventPackage.event

		eventLogger := contextkeys.LoggerFromContext(eventPackage.ctx).WithFields(port.Fields{
			"component":  "SSENotifier.dispatcher",
			"event_type": event.Type,
			"item_id":    event.ItemID,
		})

		eventBytes, err := json.Marshal(event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		sseMessage := []byte(fmt.Sprintf("event: favorites_changed\ndata: %s\n\n", string(eventBytes)))

		n.mu.RLock()
		if clientChannels, found := n.clients[event.UserEmail]; found {
			eventLogger.Debug("Dispatching event to clients", port.Fields{"channels_count": len(clientChannels)})
			for _, ch := range clientChannels {
				// select с default, чтобы не заблокироваться на переполненном
				// или закрытом канале
				select {
				case ch <- sseMessage:
				default:
					eventLogger.Warn("Client channel is full or closed, skipping.", nil)
				}
			}
		} else {
			eventLogger.Debug("No active clients for user, event dropped.", nil)
		}
		n.mu.RUnlock()
	}
}

// PublishFavoritesChanged - реализация NotifierPort. Вызывается из Use Cases.
func (n *SSENotifier) PublishFavoritesChanged(ctx context.Context, event domain.FavoritesEvent) {
	n.eventChan <- eventWithContext{ctx: ctx, event: event}
}

// AddClient добавляет новое SSE-соединение. Вызывается из HTTP-хендлера.
func (n *SSENotifier) AddClient(userEmail string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[userEmail] = append(n.clients[userEmail], ch)

	n.logger.Info("Client connected for user", port.Fields{
		"user_email":                 userEmail,
		"total_connections_for_user": len(n.clients[userEmail]),
	})
	return ch
}

// RemoveClient удаляет канал клиента при отключении.
func (n *SSENotifier) RemoveClient(userEmail string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[userEmail]
	if !found {
		return
	}

	newChannels := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			newChannels = append(newChannels, c)
		}
	}

	if len(newChannels) == 0 {
		delete(n.clients, userEmail)
		n.logger.Debug("Last client disconnected for user.", port.Fields{"user_email": userEmail})
	} else {
		n.clients[userEmail] = newChannels
		n.logger.Info("Client disconnected for user.", port.Fields{
			"user_email":            userEmail,
			"remaining_connections": len(newChannels),
		})
	}
}

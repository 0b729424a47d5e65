package pkg

import (
	"context"
	"strconv"

	"Lee_Blog/internal/model"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FollowEventProducer 把关注/取关事件投递到 Kafka。
// 按 user_id 作消息 key，同一用户的事件落在同一分区保证有序。
type FollowEventProducer struct {
	writer *kafka.Writer
}

func NewFollowEventProducer(cfg KafkaConfig) *FollowEventProducer {
	return &FollowEventProducer{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}}
}

func (p *FollowEventProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SendFollowEvent 投递 outbox 里的一条事件，消息体直接用落库时的 payload
func (p *FollowEventProducer) SendFollowEvent(ctx context.Context, ev *model.FollowEvent) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(ev.UserID, 10)),
		Value: []byte(ev.Payload),
	})
}

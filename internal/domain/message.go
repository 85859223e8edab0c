package domain

import "time"

// Message 消息领域模型（对应 messages 表）
// 仅追加，不更新不删除；timestamp 由存储层在插入时赋值
type Message struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	RecipientID int64     `db:"recipient_id"`
	Content     string    `db:"content"` // 自由文本，附件以约定标记串表示
	Timestamp   time.Time `db:"timestamp"`
}

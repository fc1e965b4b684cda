package dto

const EventRevalidatePaths = "revalidate_paths"

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type RevalidatePaths struct {
	Paths []string `json:"paths"`
}

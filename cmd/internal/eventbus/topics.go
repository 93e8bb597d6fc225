package eventbus

var (
	// TopicDocumentEvents carries document.changed events from the watcher.
	TopicDocumentEvents = NewTopic("fotofeed.document.events")
)

var AllTopics = []Topic{
	TopicDocumentEvents,
}

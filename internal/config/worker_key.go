package config

// WorkerKeyStruct names the Redis channels used by background workers.
type WorkerKeyStruct struct {
	SessionEventsChannel string
}

var WorkerKey = &WorkerKeyStruct{
	SessionEventsChannel: "session_events",
}

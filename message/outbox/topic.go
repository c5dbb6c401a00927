package outbox

// topic is the Postgres outbox topic read by the forwarder.
const topic = "events_to_forward"

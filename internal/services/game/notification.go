package game

import (
	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/protocol"
)

// Notification is a server-originated packet addressed to a specific
// client. Handlers return these instead of sending directly so the
// state transition stays testable without any transport; the dispatch
// loop performs the actual delivery.
type Notification struct {
	To     model.Login
	Packet protocol.Packet
}

func msgTo(to model.Login, text string) Notification {
	return Notification{
		To: to,
		Packet: protocol.Packet{
			Type:    protocol.SrvMsg,
			Sender:  protocol.ServerSender,
			Payload: text,
		},
	}
}

func notifyTo(to model.Login, msgType protocol.MsgType, text string) Notification {
	return Notification{
		To: to,
		Packet: protocol.Packet{
			Type:    msgType,
			Sender:  protocol.ServerSender,
			Payload: text,
		},
	}
}

package audit

import "strings"

// ActionResource holds action and resource derived from a gRPC full method name.
type ActionResource struct {
	Action   string
	Resource string
}

// ParseFullMethod returns action and resource for a gRPC full method
// (e.g. /belafrica.message.v1.MessageService/SendMessage -> send on message).
// Resource is derived from the service name; action from the method's leading verb.
func ParseFullMethod(fullMethod string) ActionResource {
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	method := fullMethod[slash+1:]
	beforeSlash := fullMethod[:slash]
	dot := strings.LastIndex(beforeSlash, ".")
	if dot < 0 {
		return ActionResource{Action: strings.ToLower(method), Resource: "unknown"}
	}
	return ActionResource{Action: methodToAction(method), Resource: serviceToResource(beforeSlash[dot+1:])}
}

func serviceToResource(serviceName string) string {
	s := strings.TrimSuffix(serviceName, "Service")
	if s == "" {
		return "unknown"
	}
	return strings.ToLower(s[0:1]) + s[1:]
}

func methodToAction(method string) string {
	switch {
	case strings.HasPrefix(method, "Get") && method != "Get":
		return "get"
	case strings.HasPrefix(method, "List"):
		return "list"
	case strings.HasPrefix(method, "Send"):
		return "send"
	case strings.HasPrefix(method, "Encrypt"):
		return "encrypt"
	case strings.HasPrefix(method, "Decrypt"):
		return "decrypt"
	case strings.HasPrefix(method, "Validate"):
		return "validate"
	case strings.HasPrefix(method, "Request"):
		return "request"
	case strings.HasPrefix(method, "Verify"):
		return "verify"
	case strings.HasPrefix(method, "Complete"):
		return "complete"
	default:
		return strings.ToLower(method)
	}
}

package chat

// Canned replies for the scripted intents, in the four supported languages.
// Unknown language codes fall back to English.

func greetingReply(lang string) string {
	switch lang {
	case "hi":
		return `नमस्ते! मैं TableGrape Agent हूं, आपकी मदद करने के लिए यहां हूं।

आज मैं आपकी कैसे मदद कर सकता हूं?

• आज की फार्म योजना देखें
• कोई समस्या रिपोर्ट करें (दरारें / फफूंद / धूप से जलना)
• मौसम के बारे में पूछें और क्या करना है`
	case "es":
		return `¡Hola! Soy TableGrape Agent, aquí para ayudarte.

¿Cómo puedo ayudarte hoy?

• Ver el plan de la granja de hoy
• Reportar un problema (grietas / mildiu / quemaduras solares)
• Preguntar sobre el clima y qué hacer`
	case "mr":
		return `नमस्कार! मी TableGrape Agent आहे, तुमची मदत करण्यासाठी येथे आहे.

आज मी तुमची कशी मदत करू शकतो?

• आजची फार्म योजना पहा
• समस्या नोंदवा (क्रॅक / मिल्ड्यू / सनबर्न)
• हवामानाबद्दल विचारा आणि काय करावे`
	default:
		return `Hello! I'm TableGrape Agent, here to help you.

How can I help you today?

• Check today's farm plan
• Report an issue (cracks / mildew / sunburn)
• Ask about weather and what to do`
	}
}

func whatsNewReply(lang string) string {
	switch lang {
	case "hi":
		return `यहाँ क्या कर सकते हैं:

• साप्ताहिक सलाह देखें
• फोटो स्कैन करें
• कोई सवाल पूछें`
	case "es":
		return `Aquí está lo que puedo hacer:

• Ver consejos semanales
• Escanear una foto
• Hacer una pregunta`
	case "mr":
		return `येथे काय करू शकतो:

• साप्ताहिक सल्ला पहा
• फोटो स्कॅन करा
• प्रश्न विचारा`
	default:
		return `Here's what I can do:

• Get weekly advice
• Scan a photo
• Ask a question`
	}
}

func ackReply(lang string) string {
	switch lang {
	case "hi":
		return "ठीक है। मौसम देखना चाहेंगे, कोई समस्या बताना चाहेंगे, या आज का काम प्लान करना चाहेंगे?"
	case "es":
		return "Entendido. ¿Quieres revisar el clima, reportar un problema o planificar el trabajo de hoy?"
	case "mr":
		return "ठीक आहे. हवामान पाहू इच्छिता, समस्या नोंदवू इच्छिता, किंवा आजचे काम प्लॅन करू इच्छिता?"
	default:
		return "Got it. Want to check weather, report an issue, or plan today's work?"
	}
}

func unavailableReply(lang string) string {
	switch lang {
	case "hi":
		return "क्षमा करें, AI सहायक अभी उपलब्ध नहीं है। कृपया अपने स्थानीय कृषि अधिकारी से सलाह लें।"
	case "es":
		return "Lo siento, el asistente de IA no está disponible en este momento. Por favor, consulte con su oficial agrícola local."
	case "mr":
		return "क्षमा करा, AI सहाय्यक आत्ता उपलब्ध नाही. कृपया आपल्या स्थानिक कृषी अधिकाऱ्याशी सल्ला घ्या."
	default:
		return "I'm sorry, the AI assistant is not available right now. Please consult with your local agriculture officer."
	}
}

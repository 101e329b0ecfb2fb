package i18n

// Message keys. Values are MarkdownV2 text unless noted otherwise.
const (
	KeyStart            = "start-msg"
	KeyChooseTemplate   = "choose-template"
	KeyNoTemplates      = "templates-empty"
	KeySchemaNotFound   = "schema-not-found"
	KeyRequiredHint     = "required-hint"
	KeyBack             = "back"
	KeyDelete           = "delete"
	KeyAddItem          = "add-item"
	KeyGenerate         = "generate-document"
	KeyQuestionDefault  = "question-default"
	KeyYes              = "yes"
	KeyNo               = "no"
	KeyIncompleteData   = "incomplete-data"
	KeySomethingWrong   = "something-went-wrong"
	KeyDocumentReady    = "document-generated"
	KeyCancelled        = "session-cancelled"
	KeyUnknownCommand   = "unknown-command"
	KeyUseButtons       = "use-buttons"
	KeyValidationFailed = "validation-failed"

	KeyInvalidInteger = "invalid-integer-input"
	KeyInvalidNumber  = "invalid-number-input"
	KeyInvalidBoolean = "invalid-boolean-input"
	KeyInvalidFormat  = "format-type-incorrect"
)

// Button captions and alerts are plain text; everything else is MarkdownV2.
var builtin = map[string]map[string]string{
	"en": {
		KeyStart:            "Hi\\! Use /create\\_document to fill a document template\\.",
		KeyChooseTemplate:   "Choose a template:",
		KeyNoTemplates:      "No templates are available\\.",
		KeySchemaNotFound:   "Template schema not found",
		KeyRequiredHint:     "required field",
		KeyBack:             "« Back",
		KeyDelete:           "Delete",
		KeyAddItem:          "+ Add item",
		KeyGenerate:         "Generate document",
		KeyQuestionDefault:  "Enter {description}:",
		KeyYes:              "Yes",
		KeyNo:               "No",
		KeyInvalidInteger:   "Please enter a whole number\\.",
		KeyInvalidNumber:    "Please enter a number\\.",
		KeyInvalidBoolean:   "Please answer Yes or No\\.",
		KeyInvalidFormat:    "The value has a wrong format\\. Dates look like 31\\.12\\.2024\\.",
		KeyIncompleteData:   "Not all required fields are filled",
		KeySomethingWrong:   "Something went wrong, please start again",
		KeyDocumentReady:    "Document *{template}* is ready\\.",
		KeyCancelled:        "Cancelled\\.",
		KeyUnknownCommand:   "Unknown command\\.",
		KeyUseButtons:       "Please use the buttons below\\.",
		KeyValidationFailed: "Data does not match the template: {message}",
	},
	"ru": {
		KeyStart:            "Привет\\! Используйте /create\\_document, чтобы заполнить шаблон документа\\.",
		KeyChooseTemplate:   "Выберите шаблон:",
		KeyNoTemplates:      "Нет доступных шаблонов\\.",
		KeySchemaNotFound:   "Схема шаблона не найдена",
		KeyRequiredHint:     "обязательное поле",
		KeyBack:             "« Назад",
		KeyDelete:           "Удалить",
		KeyAddItem:          "+ Добавить",
		KeyGenerate:         "Сгенерировать документ",
		KeyQuestionDefault:  "Введите {description}:",
		KeyYes:              "Да",
		KeyNo:               "Нет",
		KeyInvalidInteger:   "Введите целое число\\.",
		KeyInvalidNumber:    "Введите число\\.",
		KeyInvalidBoolean:   "Ответьте Да или Нет\\.",
		KeyInvalidFormat:    "Неверный формат\\. Дата вводится как 31\\.12\\.2024\\.",
		KeyIncompleteData:   "Не все обязательные поля заполнены",
		KeySomethingWrong:   "Что-то пошло не так, начните заново",
		KeyDocumentReady:    "Документ *{template}* готов\\.",
		KeyCancelled:        "Отменено\\.",
		KeyUnknownCommand:   "Неизвестная команда\\.",
		KeyUseButtons:       "Воспользуйтесь кнопками ниже\\.",
		KeyValidationFailed: "Данные не соответствуют шаблону: {message}",
	},
}

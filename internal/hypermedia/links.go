package hypermedia

import (
	"encoding/json"
)

// Links — содержимое объекта `_links` в ответах сервера. Сервер называет
// набор действий тремя разными именами; при разборе проверяются все три,
// приоритет: available_action, available_actions, availableActions.
// Значение может быть как одиночным действием, так и массивом.
type Links []Action

// linkKeys в порядке приоритета.
var linkKeys = []string{"available_action", "available_actions", "availableActions"}

func (l *Links) UnmarshalJSON(data []byte) error {
	*l = nil

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, key := range linkKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}

		var many []Action
		if err := json.Unmarshal(value, &many); err == nil {
			*l = many
			return nil
		}

		var one Action
		if err := json.Unmarshal(value, &one); err == nil {
			*l = []Action{one}
			return nil
		}
	}

	return nil
}

// Actions возвращает набор действий как слайс для передачи в Find/Has.
func (l Links) Actions() []Action {
	return []Action(l)
}

// Package hypermedia реализует сопоставление действий, которые сервер
// прикладывает к ресурсам в виде пар {href, method}. Отсутствие подходящего
// действия означает, что операция пользователю сейчас недоступна, независимо
// от его роли.
package hypermedia

import (
	"net/url"
	"strings"
)

// Action — разрешённое сервером действие над ресурсом.
type Action struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

// Find возвращает действие из набора, совпадающее с заданными href и method,
// либо nil. Сравнение идёт только по пути (query и fragment игнорируются),
// одиночный завершающий слэш не учитывается, метод сравнивается без регистра.
// Сегмент вида {id} с любой из сторон совпадает с любым непустым сегментом.
func Find(actions []Action, href, method string) *Action {
	wantPath, ok := normalizePath(href)
	if !ok {
		return nil
	}
	wantMethod := normalizeMethod(method)

	for i := range actions {
		if normalizeMethod(actions[i].Method) != wantMethod {
			continue
		}
		gotPath, ok := normalizePath(actions[i].Href)
		if !ok {
			continue
		}
		if pathsMatch(gotPath, wantPath) {
			return &actions[i]
		}
	}
	return nil
}

// Has сообщает, разрешено ли сейчас действие с заданными href и method.
func Has(actions []Action, href, method string) bool {
	return Find(actions, href, method) != nil
}

// dummyBase нужен, чтобы относительные href корректно резолвились в URL.
var dummyBase = &url.URL{Scheme: "http", Host: "action.invalid"}

// normalizePath приводит href к сравнимому виду: путь без хоста,
// query и fragment, без одиночного завершающего слэша.
func normalizePath(href string) (string, bool) {
	u, err := dummyBase.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}

	p := u.Path
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		p = "/"
	}
	return p, true
}

func normalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// pathsMatch сравнивает пути посегментно. Сегмент-шаблон вида {param}
// совпадает с любым непустым сегментом противоположной стороны, поэтому
// шаблонная и конкретная форма одного пути взаимно эквивалентны.
func pathsMatch(a, b string) bool {
	if a == b {
		return true
	}

	as := strings.Split(strings.Trim(a, "/"), "/")
	bs := strings.Split(strings.Trim(b, "/"), "/")
	if len(as) != len(bs) {
		return false
	}

	for i := range as {
		if as[i] == bs[i] {
			continue
		}
		if isTemplateSegment(as[i]) && bs[i] != "" {
			continue
		}
		if isTemplateSegment(bs[i]) && as[i] != "" {
			continue
		}
		return false
	}
	return true
}

func isTemplateSegment(seg string) bool {
	return len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

// Path приводит href к виду, пригодному для запроса через базовый URL
// клиента: схема и хост отбрасываются, query сохраняется. Сервер может
// выдать действие как относительным, так и абсолютным href.
func Path(href string) string {
	u, err := dummyBase.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}

	p := u.Path
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		return p + "?" + u.RawQuery
	}
	return p
}

// Instantiate подставляет значения в шаблонные сегменты href по порядку.
// Лишние значения игнорируются, лишние шаблоны остаются как есть.
func Instantiate(href string, values ...string) string {
	segments := strings.Split(href, "/")
	next := 0
	for i, seg := range segments {
		if isTemplateSegment(seg) && next < len(values) {
			segments[i] = values[next]
			next++
		}
	}
	return strings.Join(segments, "/")
}

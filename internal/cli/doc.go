// Package cli реализует инструмент командной строки Alerta.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Alerta API.
// Работает через HTTP, не импортирует внутренние пакеты движка.
// CLI используется для ручного запуска пассов, просмотра очереди
// алертов и управления разрешением на их показ.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Alerta API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	pending, err := client.ListPending()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: alerta alert pending --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - pass: run
//   - alert: pending, complete
//   - permission: show, request
//
// Каждая группа создаётся через фабричную функцию (NewPassCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli

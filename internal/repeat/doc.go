// Package repeat реализует календарную арифметику правил повторения.
//
// Единственная операция — NextDueDate: следующий срок напоминания
// по правилу, режиму и моменту "сейчас". Функция чистая: никаких
// обращений к часам и внешним системам, потокобезопасна по построению.
//
// Режимы:
//   - after_complete — одно применение правила от момента выполнения
//   - fixed          — применение правила от предыдущего срока до первого
//     результата строго в будущем (догоняющий цикл)
package repeat

// Package planner реализует сверку желаемых напоминаний с pending-набором
// хостовой подсистемы алертов.
//
// Единственная операция — Plan: чистая функция
// (items, pending, budget, now) → {ToSchedule, ToCancel}.
// Вся логика admission control под жёсткий потолок хоста живёт здесь;
// применение результата к шлюзу — задача пакета scheduler.
//
// Один и тот же Plan вызывается в двух масштабах — для одного списка
// и для всего парка списков; масштаб выражается входным набором
// кандидатов, а не отдельным алгоритмом.
package planner

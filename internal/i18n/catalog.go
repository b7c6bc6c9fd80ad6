package i18n

var catalog = map[Language]map[string]string{
	English: {
		"event.message_create":        "New message",
		"event.message_edit":          "Message edited",
		"event.message_delete":        "Message deleted",
		"event.message_bulk_delete":   "Messages bulk deleted",
		"event.reaction_add":          "Reaction added",
		"event.reaction_remove":       "Reaction removed",
		"event.reaction_clear":        "Reactions cleared",
		"event.reaction_clear_emoji":  "Single reaction cleared",
		"event.typing_start":          "User is typing",
		"event.voice_join":            "Joined a voice channel",
		"event.voice_leave":           "Left a voice channel",
		"event.voice_move":            "Moved to another voice channel",
		"event.voice_mute":            "Microphone muted",
		"event.voice_unmute":          "Microphone unmuted",
		"event.voice_deafen":          "Sound deafened",
		"event.voice_undeafen":        "Sound undeafened",
		"event.stage_create":          "Stage instance created",
		"event.stage_update":          "Stage instance updated",
		"event.stage_delete":          "Stage instance deleted",
		"event.guild_update":          "Server settings changed",
		"event.channel_create":        "Channel created",
		"event.channel_update":        "Channel updated",
		"event.channel_delete":        "Channel deleted",
		"event.thread_create":         "Thread created",
		"event.thread_update":         "Thread updated",
		"event.thread_delete":         "Thread deleted",
		"event.thread_members_update": "Thread members changed",
		"event.emojis_update":         "Server emojis updated",
		"event.stickers_update":       "Server stickers updated",
		"event.webhooks_update":       "Webhooks updated",
		"event.role_create":           "Role created",
		"event.role_update":           "Role updated",
		"event.role_delete":           "Role deleted",
		"event.member_join":           "Member joined the server",
		"event.member_leave":          "Member left the server",
		"event.member_update":         "Member updated",
		"event.member_ban":            "Member banned",
		"event.member_unban":          "Member unbanned",
		"event.member_timeout":        "Member timed out",
		"event.member_timeout_remove": "Member timeout removed",
		"event.invite_create":         "Invite created",
		"event.invite_delete":         "Invite deleted",
		"event.automod_rule_create":   "AutoMod rule created",
		"event.automod_rule_update":   "AutoMod rule updated",
		"event.automod_rule_delete":   "AutoMod rule deleted",
		"event.automod_action":        "AutoMod action executed",

		"field.user":       "User",
		"field.channel":    "Channel",
		"field.server":     "Server",
		"field.content":    "Content",
		"field.before":     "Before",
		"field.after":      "After",
		"field.count":      "Count",
		"field.emoji":      "Emoji",
		"field.message":    "Message",
		"field.topic":      "Topic",
		"field.name":       "Name",
		"field.code":       "Code",
		"field.inviter":    "Inviter",
		"field.role":       "Role",
		"field.rule":       "Rule",
		"field.action":     "Action",
		"field.keyword":    "Keyword",
		"field.until":      "Until",
		"field.created_at": "Account created",
		"field.added":      "Added",
		"field.removed":    "Removed",
		"field.nickname":   "Nickname",
		"field.roles":      "Roles",
		"field.thread":     "Thread",
		"field.stickers":   "Stickers",

		"category.message": "Messages",
		"category.invite":  "Invites",
		"category.server":  "Server",
		"category.voice":   "Voice",
		"category.automod": "AutoMod",
		"category.user":    "Users",

		"category.message.desc": "Message create/edit/delete, bulk deletes, reactions",
		"category.invite.desc":  "Invite create/delete",
		"category.server.desc":  "Server, channel, thread, emoji, webhook and role changes",
		"category.voice.desc":   "Voice join/leave/move, mute and deafen, stage instances",
		"category.automod.desc": "AutoMod rules and executed actions",
		"category.user.desc":    "Joins, leaves, bans, timeouts, profile changes",

		"menu.main.title":          "Bot settings",
		"menu.main.description":    "Logging and server event monitoring settings",
		"menu.main.version":        "Version",
		"menu.logging.title":       "Logging settings",
		"menu.logging.description": "Manage logging on this server",
		"menu.logging.status":      "Logging status",
		"menu.logging.channel":     "Log channel",
		"menu.logging.language":    "Language",
		"menu.details.title":       "Detailed logging settings",
		"menu.details.description": "Choose which events should be logged:",
		"menu.status.on":           "Enabled",
		"menu.status.off":          "Disabled",
		"menu.channel.unset":       "Not set",
		"menu.channel.missing":     "Channel not found",
		"menu.button.settings":     "Settings",
		"menu.button.source":       "Source code",
		"menu.button.enable":       "Enable logging",
		"menu.button.disable":      "Disable logging",
		"menu.button.details":      "Detailed settings",
		"menu.button.back":         "Back",
		"menu.select.channel":      "Choose a channel for logs",
		"menu.select.language":     "Choose a language",
		"menu.forbidden":           "You need the Manage Server permission to change these settings.",
		"menu.failed":              "Settings could not be saved, try again later.",
		"menu.ping":                "Pong! Latency: %dms",

		"value.none":    "none",
		"value.unknown": "unknown",
		"value.jump":    "Jump to message",
	},
	Russian: {
		"event.message_create":        "Новое сообщение",
		"event.message_edit":          "Сообщение отредактировано",
		"event.message_delete":        "Сообщение удалено",
		"event.message_bulk_delete":   "Удалено несколько сообщений",
		"event.reaction_add":          "Добавлена реакция",
		"event.reaction_remove":       "Удалена реакция",
		"event.reaction_clear":        "Очищены реакции",
		"event.reaction_clear_emoji":  "Очищена одна реакция",
		"event.typing_start":          "Пользователь печатает",
		"event.voice_join":            "Пользователь зашёл в голосовой канал",
		"event.voice_leave":           "Пользователь вышел из голосового канала",
		"event.voice_move":            "Пользователь перешёл в другой голосовой канал",
		"event.voice_mute":            "Микрофон выключен",
		"event.voice_unmute":          "Микрофон включён",
		"event.voice_deafen":          "Звук выключен",
		"event.voice_undeafen":        "Звук включён",
		"event.stage_create":          "Создано Stage Instance",
		"event.stage_update":          "Изменён Stage Instance",
		"event.stage_delete":          "Удалён Stage Instance",
		"event.guild_update":          "Изменены настройки сервера",
		"event.channel_create":        "Создан новый канал",
		"event.channel_update":        "Изменены настройки канала",
		"event.channel_delete":        "Удалён канал",
		"event.thread_create":         "Создана ветка",
		"event.thread_update":         "Изменена ветка",
		"event.thread_delete":         "Удалена ветка",
		"event.thread_members_update": "Изменены участники ветки",
		"event.emojis_update":         "Обновлены эмодзи сервера",
		"event.stickers_update":       "Обновлены стикеры сервера",
		"event.webhooks_update":       "Обновлены вебхуки",
		"event.role_create":           "Создана роль",
		"event.role_update":           "Изменена роль",
		"event.role_delete":           "Удалена роль",
		"event.member_join":           "Пользователь присоединился к серверу",
		"event.member_leave":          "Пользователь покинул сервер",
		"event.member_update":         "Изменены данные пользователя",
		"event.member_ban":            "Пользователь забанен",
		"event.member_unban":          "Пользователь разбанен",
		"event.member_timeout":        "Пользователь получил тайм-аут",
		"event.member_timeout_remove": "Тайм-аут пользователя снят",
		"event.invite_create":         "Создано приглашение",
		"event.invite_delete":         "Удалено приглашение",
		"event.automod_rule_create":   "Создано правило AutoMod",
		"event.automod_rule_update":   "Изменено правило AutoMod",
		"event.automod_rule_delete":   "Удалено правило AutoMod",
		"event.automod_action":        "Сработал AutoMod",

		"field.user":       "Пользователь",
		"field.channel":    "Канал",
		"field.server":     "Сервер",
		"field.content":    "Содержание",
		"field.before":     "До",
		"field.after":      "После",
		"field.count":      "Количество",
		"field.emoji":      "Эмодзи",
		"field.message":    "Сообщение",
		"field.topic":      "Тема",
		"field.name":       "Название",
		"field.code":       "Код",
		"field.inviter":    "Пригласивший",
		"field.role":       "Роль",
		"field.rule":       "Правило",
		"field.action":     "Действие",
		"field.keyword":    "Ключевое слово",
		"field.until":      "До",
		"field.created_at": "Дата создания аккаунта",
		"field.added":      "Добавлены",
		"field.removed":    "Удалены",
		"field.nickname":   "Никнейм",
		"field.roles":      "Роли",
		"field.thread":     "Ветка",
		"field.stickers":   "Стикеры",

		"category.message": "Сообщения",
		"category.invite":  "Приглашения",
		"category.server":  "Сервер",
		"category.voice":   "Голосовые",
		"category.automod": "AutoMod",
		"category.user":    "Пользователи",

		"category.message.desc": "Создание, редактирование и удаление сообщений, реакции",
		"category.invite.desc":  "Создание и удаление приглашений",
		"category.server.desc":  "Изменения сервера, каналов, веток, эмодзи, вебхуков и ролей",
		"category.voice.desc":   "Вход, выход и перемещение, микрофон и звук, Stage-ивенты",
		"category.automod.desc": "Правила AutoMod и сработавшие действия",
		"category.user.desc":    "Заходы, выходы, баны, таймауты, изменения профиля",

		"menu.main.title":          "Настройки бота",
		"menu.main.description":    "Основные настройки логирования и мониторинга событий на сервере",
		"menu.main.version":        "Версия",
		"menu.logging.title":       "Настройки логирования",
		"menu.logging.description": "Управление параметрами логирования на сервере",
		"menu.logging.status":      "Статус логирования",
		"menu.logging.channel":     "Лог-канал",
		"menu.logging.language":    "Язык",
		"menu.details.title":       "Детальные настройки логирования",
		"menu.details.description": "Выберите какие события должны логироваться:",
		"menu.status.on":           "Включено",
		"menu.status.off":          "Выключено",
		"menu.channel.unset":       "Не установлен",
		"menu.channel.missing":     "Канал не найден",
		"menu.button.settings":     "Настройки",
		"menu.button.source":       "Исходный код",
		"menu.button.enable":       "Включить логирование",
		"menu.button.disable":      "Выключить логирование",
		"menu.button.details":      "Детальные настройки",
		"menu.button.back":         "Назад",
		"menu.select.channel":      "Выберите канал для логов",
		"menu.select.language":     "Выберите язык",
		"menu.forbidden":           "Для изменения настроек нужно право «Управлять сервером».",
		"menu.failed":              "Не удалось сохранить настройки, попробуйте позже.",
		"menu.ping":                "Pong! Задержка: %dмс",

		"value.none":    "нет",
		"value.unknown": "неизвестно",
		"value.jump":    "Перейти к сообщению",
	},
}

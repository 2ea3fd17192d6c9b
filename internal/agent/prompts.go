package agent

const queryComposerRole = `You are a search agent that receives a user task and then generates a search query from it`

const queryComposerPrompt = `Turn the user task below into a single web search query.

Rules:
1. Output exactly one line containing only the query, 3-10 words.
2. If the task asks for a local service (barber, plumber, restaurant, and similar) and does not name a place, append "near me".
3. If the task already names a location, never add "near me".
4. No quotes, no markdown, no explanations, no conversational filler.

Task: {task}

Query:`

const conversationRole = `You are Clanker, a helpful AI assistant. You will always be the second agent after the user
requests a task. You just need to keep bringing the conversation back to the task at hand.`

const resultCleanerRole = `You are a data-cleaning agent that creates structured json objects`

const resultCleanerPrompt = `Below is the raw output of a web search for local businesses. It may contain
markdown, citations, log noise and partial JSON.

Produce ONLY a single strict JSON object with this exact structure, one key per
business:
{
    "Business_Name": {
        "number": "<phone_number>",
        "hours": "<opening_hours>",
        "stars": <rating between 0 and 5>,
        "price_range": "<one of $, $$, $$$>"
    }
}

Use null for any field you cannot determine. Do not wrap the object in code
fences and do not add any text before or after it.

Raw search output:
{results}`
